package handler

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aidiary/internal/db"
	"github.com/aidiary/internal/service"
	"github.com/aidiary/internal/stats"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type diaryPageEntry struct {
	Entry   db.DiaryEntry
	HTML    template.HTML
	Mood    stats.Mood
	DateStr string
}

func sessionUsername(c *gin.Context) string {
	session := sessions.Default(c)
	if name, ok := session.Get("username").(string); ok {
		return name
	}
	return ""
}

// ShowHome 渲染首页：日记与日程的录入表单
func (a *API) ShowHome(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    "AI 日记",
		"username": sessionUsername(c),
		"moods":    stats.Moods(),
		"today":    time.Now().Format("2006-01-02"),
	})
}

// ShowDiaryList 渲染日记列表页，支持情绪过滤
func (a *API) ShowDiaryList(c *gin.Context) {
	filter := service.DiaryFilter{}
	selected := strings.TrimSpace(c.Query("rating"))
	if selected != "" {
		if rating, err := strconv.Atoi(selected); err == nil {
			filter.Rating = &rating
		}
	}

	entries, err := a.diary.List(currentUserID(c), filter)
	if err != nil {
		log.Printf("load diary list failed: %v", err)
		entries = nil
	}

	pageEntries := make([]diaryPageEntry, 0, len(entries))
	for _, entry := range entries {
		rendered, err := service.RenderMarkdown(entry.Content)
		if err != nil {
			rendered = template.HTML(template.HTMLEscapeString(entry.Content))
		}
		pageEntries = append(pageEntries, diaryPageEntry{
			Entry:   entry,
			HTML:    rendered,
			Mood:    stats.MoodOf(entry.Rating),
			DateStr: entry.CreatedAt.Format("2006年01月02日"),
		})
	}

	c.HTML(http.StatusOK, "diary.html", gin.H{
		"title":    "日记列表",
		"username": sessionUsername(c),
		"entries":  pageEntries,
		"moods":    stats.Moods(),
		"selected": selected,
	})
}

// ShowCalendarPage 渲染日历页：当日日程、完成状态与月度统计容器
func (a *API) ShowCalendarPage(c *gin.Context) {
	selectedDate := strings.TrimSpace(c.Query("date"))
	if selectedDate == "" {
		selectedDate = time.Now().Format("2006-01-02")
	}

	userID := currentUserID(c)

	dayEvents, err := a.calendar.ListByDate(userID, selectedDate)
	if err != nil {
		log.Printf("load events for date failed: %v", err)
		dayEvents = nil
	}

	allEvents, err := a.calendar.List(userID)
	if err != nil {
		log.Printf("load events failed: %v", err)
		allEvents = nil
	}

	month := stats.MonthOf(time.Now())
	c.HTML(http.StatusOK, "calendar.html", gin.H{
		"title":     "日历",
		"username":  sessionUsername(c),
		"date":      selectedDate,
		"dayEvents": dayEvents,
		"events":    allEvents,
		"month":     month.String(),
		"buckets":   stats.CompletionByDay(allEvents, month),
	})
}
