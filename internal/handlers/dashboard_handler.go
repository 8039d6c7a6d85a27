package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/internal/report"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// summaryCacheTTL is short on purpose: the summary is a function of "today",
// and a stale cache must never survive a date rollover long enough to matter.
const summaryCacheTTL = 2 * time.Minute

// FetchSummaryData loads both record sets and aggregates them. Shared by the
// HTTP handlers, the Telegram commands and the scheduled jobs so all three
// always agree on the numbers.
func FetchSummaryData(now time.Time) (report.Summary, error) {
	var commitments []models.Commitment
	if err := config.DB.Find(&commitments).Error; err != nil {
		return report.Summary{}, fmt.Errorf("fetch commitments: %w", err)
	}
	var payments []models.Payment
	if err := config.DB.Find(&payments).Error; err != nil {
		return report.Summary{}, fmt.Errorf("fetch payments: %w", err)
	}
	return report.DashboardSummary(commitments, payments, now), nil
}

// FetchMonthSummaryData is FetchSummaryData restricted to one calendar month.
func FetchMonthSummaryData(month time.Month, year int, now time.Time) (report.Summary, error) {
	var commitments []models.Commitment
	if err := config.DB.Find(&commitments).Error; err != nil {
		return report.Summary{}, fmt.Errorf("fetch commitments: %w", err)
	}
	var payments []models.Payment
	if err := config.DB.Find(&payments).Error; err != nil {
		return report.Summary{}, fmt.Errorf("fetch payments: %w", err)
	}
	return report.MonthSummary(commitments, payments, month, year, now), nil
}

// GetDashboardSummaryHandler serves the all-time summary, cached briefly in
// Redis.
func GetDashboardSummaryHandler(c *gin.Context) {
	cacheKey := summaryCachePrefix + ":all"

	if config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, cacheKey).Result(); err == nil {
			var s report.Summary
			if json.Unmarshal([]byte(cached), &s) == nil {
				c.JSON(http.StatusOK, s)
				return
			}
		} else if err != redis.Nil {
			slog.Error("Summary cache read failed", "error", err)
		}
	}

	summary, err := FetchSummaryData(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo calcular el resumen"})
		return
	}

	if config.RDB != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := config.RDB.Set(config.Ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
				slog.Error("Summary cache write failed", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonthSummaryHandler serves one month's summary. Query params "month"
// (1-12) and "year"; both default to the current period.
func GetMonthSummaryHandler(c *gin.Context) {
	now := time.Now()

	month := int(now.Month())
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mes inválido, se espera 1-12"})
			return
		}
		month = parsed
	}
	year := now.Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Año inválido"})
			return
		}
		year = parsed
	}

	cacheKey := fmt.Sprintf("%s:%d-%02d", summaryCachePrefix, year, month)
	if config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, cacheKey).Result(); err == nil {
			var s report.Summary
			if json.Unmarshal([]byte(cached), &s) == nil {
				c.JSON(http.StatusOK, s)
				return
			}
		} else if err != redis.Nil {
			slog.Error("Summary cache read failed", "error", err)
		}
	}

	summary, err := FetchMonthSummaryData(time.Month(month), year, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo calcular el resumen"})
		return
	}

	if config.RDB != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := config.RDB.Set(config.Ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
				slog.Error("Summary cache write failed", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, summary)
}
