package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/battleground/models"
	"github.com/padraicbc/battleground/store"
)

// Teams returns the names of all teams.
func (h *Handler) Teams(c echo.Context) error {
	teams, err := h.store.ListTeams(c.Request().Context())
	if err != nil {
		return h.storeError("list_teams", err)
	}
	return c.JSON(http.StatusOK, teams)
}

// Agents returns agent names, optionally filtered by tournament, agent_type and team.
func (h *Handler) Agents(c echo.Context) error {
	tournament, ok := optionalID(c.QueryParam("tournament"))
	if !ok {
		return c.JSON(http.StatusOK, []string{})
	}

	f := store.AgentFilter{
		TournamentID: tournament,
		Team:         optionalString(c.QueryParam("team")),
	}
	if t := optionalString(c.QueryParam("agent_type")); t != nil {
		typ := models.AgentType(*t)
		f.AgentType = &typ
	}

	agents, err := h.store.ListAgents(c.Request().Context(), f)
	if err != nil {
		return h.storeError("list_agents", err)
	}
	return c.JSON(http.StatusOK, agents)
}

// Tournaments returns every tournament id with its start time.
func (h *Handler) Tournaments(c echo.Context) error {
	tournaments, err := h.store.ListTournaments(c.Request().Context())
	if err != nil {
		return h.storeError("list_tournaments", err)
	}
	return c.JSON(http.StatusOK, tournaments)
}

// Matches returns matches, optionally filtered by tournament_id.
func (h *Handler) Matches(c echo.Context) error {
	tournament, ok := optionalID(c.QueryParam("tournament_id"))
	if !ok {
		return c.JSON(http.StatusOK, []store.MatchSummary{})
	}

	matches, err := h.store.ListMatches(c.Request().Context(), store.MatchFilter{TournamentID: tournament})
	if err != nil {
		return h.storeError("list_matches", err)
	}
	return c.JSON(http.StatusOK, matches)
}
