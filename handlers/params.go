package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/battleground/store"
)

// allValues is the legacy filter value meaning "do not filter".
const allValues = "all"

// emptyObject is served for entities that do not exist.
var emptyObject = struct{}{}

// optionalString maps an absent or "all" parameter to nil.
func optionalString(v string) *string {
	if v == "" || v == allValues {
		return nil
	}
	return &v
}

// optionalID parses an id filter. ok is false when v is set but is not an
// integer, in which case the filter can match nothing.
func optionalID(v string) (id *int64, ok bool) {
	if v == "" || v == allValues {
		return nil, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// entity writes v, or {} when err is store.ErrNotFound.
func (h *Handler) entity(c echo.Context, op string, v interface{}, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusOK, emptyObject)
	}
	if err != nil {
		return h.storeError(op, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) storeError(op string, err error) error {
	h.logger.Error("query failed", zap.String("op", op), zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
