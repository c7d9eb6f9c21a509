// cmd/mktoken/main.go
// Mints an API token for a client. Tokens are sent in the x-auth header and
// are only checked when JWT_SECRET is set on the server.
//
// Usage:
//
//	go run ./cmd/mktoken -client scoreboard -ttl 720h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/padraicbc/battleground/config"
	mw "github.com/padraicbc/battleground/middleware"
)

func main() {
	client := flag.String("client", "", "client name (required)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	if *client == "" {
		log.Fatal("-client is required")
	}

	cfg := config.Load()
	if !cfg.AuthEnabled() {
		log.Fatal("JWT_SECRET must be set")
	}

	token, err := mw.NewToken(*client, cfg.JWTKey(), *ttl, time.Now())
	if err != nil {
		log.Fatal("sign token:", err)
	}

	fmt.Println(token)
}
