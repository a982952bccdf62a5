package rest

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/store"
)

const MAX_PAGE_SIZE = 500

// ListItemsQueryParams holds query parameters for GET /api/v1/items
type ListItemsQueryParams struct {
	// Since is an RFC3339 timestamp or a YYYY-MM-DD date
	Since string `form:"since"`
	// Topics is a comma separated list; items sharing any topic are kept
	Topics    string `form:"topics"`
	Platform  string `form:"platform"`
	Publisher string `form:"publisher"`
	Limit     int    `form:"limit,default=100"`
}

// ParseListItemsQuery parses and validates query parameters for GET /api/v1/items
func ParseListItemsQuery(c *gin.Context) (*store.MediaItemQuery, error) {
	var params ListItemsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	query := &store.MediaItemQuery{
		Publisher: strings.TrimSpace(params.Publisher),
		TopicsAny: splitList(params.Topics),
	}

	if params.Since != "" {
		since, err := parseSince(params.Since)
		if err != nil {
			return nil, err
		}
		query.Since = &since
	}

	if params.Platform != "" {
		platform := domain.Platform(strings.ToLower(strings.TrimSpace(params.Platform)))
		if !domain.IsValidPlatform(platform) {
			return nil, fmt.Errorf("unknown platform: %s", params.Platform)
		}
		query.Platform = platform
	}

	// Cap limits
	switch {
	case params.Limit <= 0:
		return nil, fmt.Errorf("limit must be positive")
	case params.Limit > MAX_PAGE_SIZE:
		query.Limit = MAX_PAGE_SIZE
	default:
		query.Limit = params.Limit
	}

	return query, nil
}

// parseSince accepts RFC3339 timestamps and plain dates, the latter read as UTC midnight
func parseSince(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid since: %s", value)
}

// splitList splits a comma separated value, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
