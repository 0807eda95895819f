package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aidiary/internal/service"
	"github.com/aidiary/internal/stats"
	"github.com/gin-gonic/gin"
)

// resolveMonth 解析 month 查询参数，缺省为当前月份。
func resolveMonth(c *gin.Context, now time.Time) (stats.Month, bool) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		return stats.MonthOf(now), true
	}

	month, err := stats.ParseMonth(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "月份格式应为 yyyy-MM")
		return stats.Month{}, false
	}
	return month, true
}

// GetCalendarStats 返回所选月份的日程完成统计
func (a *API) GetCalendarStats(c *gin.Context) {
	now := time.Now()
	month, ok := resolveMonth(c, now)
	if !ok {
		return
	}

	events, err := a.calendar.List(currentUserID(c))
	if err != nil {
		log.Printf("load events for stats failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   month.String(),
		"buckets": stats.CompletionByDay(events, month),
		"canPrev": true,
		"canNext": month.CanAdvance(1, now),
	})
}

// GetEmotionStats 返回所选月份的情绪分布统计
func (a *API) GetEmotionStats(c *gin.Context) {
	now := time.Now()
	month, ok := resolveMonth(c, now)
	if !ok {
		return
	}

	entries, err := a.diary.List(currentUserID(c), service.DiaryFilter{})
	if err != nil {
		log.Printf("load entries for stats failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   month.String(),
		"buckets": stats.EmotionCounts(entries, month),
		"canPrev": true,
		"canNext": month.CanAdvance(1, now),
	})
}
