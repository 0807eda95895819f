package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/aidiary/internal/db"
	"github.com/aidiary/internal/service"
	"github.com/gin-gonic/gin"
)

type calendarEventPayload struct {
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type calendarEventView struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
}

func newCalendarEventView(event db.CalendarEvent) calendarEventView {
	return calendarEventView{
		ID:          event.ID,
		Date:        event.Date,
		Title:       event.Title,
		Description: event.Description,
		Completed:   event.Completed,
	}
}

// GetCalendarEvents 返回当前用户的日程，可通过 date 参数限定某一天
func (a *API) GetCalendarEvents(c *gin.Context) {
	userID := currentUserID(c)

	var (
		events []db.CalendarEvent
		err    error
	)
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		events, err = a.calendar.ListByDate(userID, date)
	} else {
		events, err = a.calendar.List(userID)
	}
	if err != nil {
		if errors.Is(err, service.ErrEventDateInvalid) {
			respondError(c, http.StatusBadRequest, "日期格式应为 yyyy-MM-dd")
			return
		}
		log.Printf("list calendar events failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	views := make([]calendarEventView, 0, len(events))
	for _, event := range events {
		views = append(views, newCalendarEventView(event))
	}
	c.JSON(http.StatusOK, gin.H{"events": views})
}

// CreateCalendarEvent 新建日程
func (a *API) CreateCalendarEvent(c *gin.Context) {
	var payload calendarEventPayload
	if !bindJSON(c, &payload, "请求体不合法") {
		return
	}

	event, err := a.calendar.Create(currentUserID(c), payload.Date, payload.Title)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventTitleEmpty):
			respondError(c, http.StatusBadRequest, "日程内容不能为空")
		case errors.Is(err, service.ErrEventDateInvalid):
			respondError(c, http.StatusBadRequest, "日期格式应为 yyyy-MM-dd")
		default:
			log.Printf("create calendar event failed: %v", err)
			respondError(c, http.StatusInternalServerError, msgRetryLater)
		}
		return
	}

	c.JSON(http.StatusCreated, newCalendarEventView(*event))
}

// UpdateCalendarEvent 修改日程标题与描述
func (a *API) UpdateCalendarEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "日程编号不合法")
		return
	}

	var payload calendarEventPayload
	if !bindJSON(c, &payload, "请求体不合法") {
		return
	}

	event, err := a.calendar.UpdateDetails(currentUserID(c), id, service.EventDetails{
		Title:       payload.Title,
		Description: payload.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventTitleEmpty):
			respondError(c, http.StatusBadRequest, "日程内容不能为空")
		case errors.Is(err, service.ErrEventNotFound):
			respondError(c, http.StatusNotFound, "日程不存在")
		default:
			log.Printf("update calendar event failed: %v", err)
			respondError(c, http.StatusInternalServerError, msgRetryLater)
		}
		return
	}

	c.JSON(http.StatusOK, newCalendarEventView(*event))
}

// ToggleCalendarEvent 翻转日程完成状态
func (a *API) ToggleCalendarEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "日程编号不合法")
		return
	}

	event, err := a.calendar.ToggleCompleted(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "日程不存在")
			return
		}
		log.Printf("toggle calendar event failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	c.JSON(http.StatusOK, newCalendarEventView(*event))
}

// DeleteCalendarEvent 删除日程
func (a *API) DeleteCalendarEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "日程编号不合法")
		return
	}

	if err := a.calendar.Delete(currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "日程不存在")
			return
		}
		log.Printf("delete calendar event failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
