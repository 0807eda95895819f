package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aidiary/internal/db"
	"github.com/aidiary/internal/service"
	"github.com/aidiary/internal/stats"
	"github.com/gin-gonic/gin"
)

type diaryEntryPayload struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating"`
}

type diaryEntryView struct {
	ID         uint    `json:"id"`
	Content    string  `json:"content"`
	AIResponse *string `json:"ai_response,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
	Emotion    string  `json:"emotion,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func newDiaryEntryView(entry db.DiaryEntry) diaryEntryView {
	view := diaryEntryView{
		ID:         entry.ID,
		Content:    entry.Content,
		AIResponse: entry.AIResponse,
		Rating:     entry.Rating,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.Rating != nil {
		view.Emotion = stats.MoodOf(entry.Rating).Label
	}
	return view
}

// GetDiaryEntries 返回当前用户的日记列表，可通过 rating 参数按情绪过滤
func (a *API) GetDiaryEntries(c *gin.Context) {
	filter := service.DiaryFilter{}
	if raw := strings.TrimSpace(c.Query("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "评分参数不合法")
			return
		}
		filter.Rating = &rating
	}

	entries, err := a.diary.List(currentUserID(c), filter)
	if err != nil {
		log.Printf("list diary entries failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	views := make([]diaryEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newDiaryEntryView(entry))
	}
	c.JSON(http.StatusOK, gin.H{"entries": views})
}

// CreateDiaryEntry 保存一篇新日记
func (a *API) CreateDiaryEntry(c *gin.Context) {
	var payload diaryEntryPayload
	if !bindJSON(c, &payload, "请求体不合法") {
		return
	}

	entry, err := a.diary.Create(currentUserID(c), payload.Content, payload.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDiaryContentEmpty):
			respondError(c, http.StatusBadRequest, "日记内容不能为空")
		case errors.Is(err, service.ErrDiaryRatingInvalid):
			respondError(c, http.StatusBadRequest, "情绪评分不合法")
		default:
			log.Printf("create diary entry failed: %v", err)
			respondError(c, http.StatusInternalServerError, msgRetryLater)
		}
		return
	}

	c.JSON(http.StatusCreated, newDiaryEntryView(*entry))
}

// UpdateDiaryEntry 修改日记正文
func (a *API) UpdateDiaryEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "日记编号不合法")
		return
	}

	var payload diaryEntryPayload
	if !bindJSON(c, &payload, "请求体不合法") {
		return
	}

	entry, err := a.diary.UpdateContent(currentUserID(c), id, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDiaryContentEmpty):
			respondError(c, http.StatusBadRequest, "日记内容不能为空")
		case errors.Is(err, service.ErrDiaryNotFound):
			respondError(c, http.StatusNotFound, "日记不存在")
		default:
			log.Printf("update diary entry failed: %v", err)
			respondError(c, http.StatusInternalServerError, msgRetryLater)
		}
		return
	}

	c.JSON(http.StatusOK, newDiaryEntryView(*entry))
}

// DeleteDiaryEntry 删除日记
func (a *API) DeleteDiaryEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "日记编号不合法")
		return
	}

	if err := a.diary.Delete(currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrDiaryNotFound) {
			respondError(c, http.StatusNotFound, "日记不存在")
			return
		}
		log.Printf("delete diary entry failed: %v", err)
		respondError(c, http.StatusInternalServerError, msgRetryLater)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type processDiaryPayload struct {
	Content string `json:"content"`
	UserID  uint   `json:"user_id"`
}

// ProcessDiaryEntry 将日记内容交给大模型生成鼓励语并落库。
// 与独立推理函数保持一致：任何失败统一返回 500 加可读消息。
func (a *API) ProcessDiaryEntry(c *gin.Context) {
	var payload processDiaryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusInternalServerError, service.ErrReplyInputMissing.Error())
		return
	}

	result, err := a.replies.ProcessEntry(c.Request.Context(), service.ReplyInput{
		UserID:  payload.UserID,
		Content: payload.Content,
	})
	if err != nil {
		log.Printf("process diary entry failed: %v", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"aiResponse": result.Reply})
}
