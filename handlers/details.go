package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Tournament returns one tournament with its agents and match ids.
func (h *Handler) Tournament(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, emptyObject)
	}
	t, err := h.store.GetTournament(c.Request().Context(), id)
	return h.entity(c, "get_tournament", t, err)
}

// MatchID looks up a match by tournament_id and the pelican and panther agent names.
func (h *Handler) MatchID(c echo.Context) error {
	tid, err := strconv.ParseInt(c.QueryParam("tournament_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, emptyObject)
	}
	ref, err := h.store.GetMatchID(c.Request().Context(), tid, c.QueryParam("panther"), c.QueryParam("pelican"))
	return h.entity(c, "get_match_id", ref, err)
}

// Match returns one match with scores and game ids.
func (h *Handler) Match(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, emptyObject)
	}
	m, err := h.store.GetMatch(c.Request().Context(), id)
	return h.entity(c, "get_match", m, err)
}

// Game returns one game with the agent names of its match.
func (h *Handler) Game(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, emptyObject)
	}
	g, err := h.store.GetGame(c.Request().Context(), id)
	return h.entity(c, "get_game", g, err)
}

// Health pings the database.
func (h *Handler) Health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
