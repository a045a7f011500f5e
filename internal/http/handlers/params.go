package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resto-analytics/backend/internal/db"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// parsePage reads page/limit, falling back to 1/20 on anything missing,
// malformed, or non-positive.
func parsePage(c *gin.Context) db.Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return db.Page{Page: page, Limit: limit}
}

// filterParam treats the literal value "all" the same as an absent filter.
func filterParam(c *gin.Context, name string) string {
	v := strings.TrimSpace(c.Query(name))
	if v == "all" {
		return ""
	}
	return v
}

// parseDateRange accepts RFC 3339 timestamps or bare dates for from/to.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time) {
	return parseTimeParam(c.Query("from")), parseTimeParam(c.Query("to"))
}

func parseTimeParam(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	return nil
}

// bearerToken pulls the caller's token out of the Authorization header
// so it can be forwarded request-scoped to the RestoHost API.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}
