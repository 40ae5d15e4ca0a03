package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const dateOnly = "2006-01-02"

func parseID(c *gin.Context, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.BadRequest("invalid_id", "invalid %s id", what)
	}
	return id, nil
}

// queryInt reads a non-negative integer query parameter, returning def when absent.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apierr.BadRequest("invalid_request", "%s must be a non-negative integer", key)
	}
	return n, nil
}

// queryTime accepts RFC3339 or a bare date; a bare `to` date covers the whole day.
func queryTime(c *gin.Context, key string, endOfDay bool) (*time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, v)
	if err != nil {
		return nil, apierr.BadRequest("invalid_request", "%s must be RFC3339 or YYYY-MM-DD", key)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func parseFilter(c *gin.Context, defaultLimit int) (query.Filter, error) {
	var f query.Filter
	var err error
	if f.Skip, err = queryInt(c, "skip", 0); err != nil {
		return f, err
	}
	if f.Limit, err = queryInt(c, "limit", defaultLimit); err != nil {
		return f, err
	}
	if f.Limit > query.MaxLimit {
		f.Limit = query.MaxLimit
	}
	if f.From, err = queryTime(c, "from", false); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to", true); err != nil {
		return f, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, apierr.BadRequest("invalid_request", "to must not be before from")
	}
	return f, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.BadRequest("invalid_request", "invalid request body: %v", err)
	}
	return nil
}
