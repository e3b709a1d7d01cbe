package crudsvc

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-crud"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/google/uuid"
)

func queryUUID(ctx crud.Context, key string) uuid.UUID {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func queryStringSlice(ctx crud.Context, key string) []string {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func queryInt(ctx crud.Context, key string, def int) int {
	if value := ctx.Query(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}

func queryTime(ctx crud.Context, key string) *time.Time {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryCategory(ctx crud.Context, key string) types.JobCategory {
	raw := strings.ToLower(strings.TrimSpace(ctx.Query(key)))
	if raw == "" {
		return ""
	}
	return types.JobCategory(raw)
}

func parseJobStatuses(ctx crud.Context, key string) []types.JobStatus {
	values := queryStringSlice(ctx, key)
	if len(values) == 0 {
		return nil
	}
	statuses := make([]types.JobStatus, 0, len(values))
	for _, value := range values {
		status := types.JobStatus(strings.ToLower(value))
		if status.Valid() {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
