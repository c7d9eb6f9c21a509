// Package store implements the read-only battleground queries: filtered
// lookups over teams, agents, tournaments, matches and games, projected into
// the flat JSON shapes served by the API.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/battleground/models"
)

// ErrNotFound is returned by the single-entity getters when no row matches.
var ErrNotFound = errors.New("not found")

// isoSeconds is the timestamp layout served by every endpoint: ISO-8601
// without fractional seconds or zone.
const isoSeconds = "2006-01-02T15:04:05"

// Scorer computes a match score for one side. Games and both side agents are
// loaded on m before Score is called.
type Scorer interface {
	Score(m *models.Match, side models.AgentType) int
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(m *models.Match, side models.AgentType) int

// Score calls f(m, side).
func (f ScorerFunc) Score(m *models.Match, side models.AgentType) int {
	return f(m, side)
}

// WinCount scores a side by the number of games it won. See models.Match.Score.
var WinCount Scorer = ScorerFunc(func(m *models.Match, side models.AgentType) int {
	return m.Score(side)
})

// Store runs queries against a bun database handle.
type Store struct {
	db     bun.IDB
	scorer Scorer
}

// Option configures a Store.
type Option func(*Store)

// WithScorer replaces the default WinCount scorer.
func WithScorer(s Scorer) Option {
	return func(st *Store) { st.scorer = s }
}

// New returns a Store reading from db. The handle may be shared between
// concurrent callers.
func New(db bun.IDB, opts ...Option) *Store {
	s := &Store{db: db, scorer: WinCount}
	for _, o := range opts {
		o(s)
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoSeconds)
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("get %s %d: %w", what, id, err)
}

func agentName(a *models.Agent) string {
	if a == nil {
		return ""
	}
	return a.AgentName
}
