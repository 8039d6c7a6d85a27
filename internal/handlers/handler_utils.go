package handlers

import (
	"fmt"
	"log/slog"

	"github.com/DiChris2901/Dr-Group-sub015/config"
)

const summaryCachePrefix = "dashboard:summary"

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:data", userID)
}

// invalidateSummaryCache drops every cached dashboard summary. Called on any
// commitment or payment write so reads never serve stale classifications.
func invalidateSummaryCache() {
	if config.RDB == nil {
		return
	}
	iter := config.RDB.Scan(config.Ctx, 0, summaryCachePrefix+"*", 0).Iterator()
	for iter.Next(config.Ctx) {
		if err := config.RDB.Del(config.Ctx, iter.Val()).Err(); err != nil {
			slog.Error("Failed to invalidate summary cache key", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Error("Summary cache scan failed", "error", err)
	}
}
