package handlers

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/battleground/store"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store  *store.Store
	db     Pinger
	logger *zap.Logger
}

// New creates a Handler serving queries from st. db is used by the health check.
func New(st *store.Store, db Pinger, logger *zap.Logger) *Handler {
	return &Handler{store: st, db: db, logger: logger}
}

// Register mounts the query routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/teams", h.Teams)
	g.GET("/agents", h.Agents)
	g.GET("/tournaments", h.Tournaments)
	g.GET("/tournaments/:id", h.Tournament)
	g.GET("/matches", h.Matches)
	g.GET("/matches/:id", h.Match)
	g.GET("/match_id", h.MatchID)
	g.GET("/games/:id", h.Game)
}
