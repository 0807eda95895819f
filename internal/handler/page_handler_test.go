package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// newPageRouter 与 newTestRouter 类似，但加载模板以便断言页面渲染结果。
func newPageRouter(api *API, userID uint) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.Use(func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(sessionUserIDKey, userID)
		c.Next()
	})

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"eq":  func(a, b interface{}) bool { return a == b },
	})
	r.LoadHTMLGlob("../../web/template/*.html")

	r.GET("/diary", api.ShowDiaryList)
	r.GET("/calendar", api.ShowCalendarPage)

	return r
}

func TestDiaryPageRendersEditControl(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	apiRouter := newTestRouter(api, 1)
	pages := newPageRouter(api, 1)

	if w := doJSON(apiRouter, http.MethodPost, "/api/diary", map[string]any{"content": "今天散步了", "rating": 1}); w.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", w.Code)
	}

	w := doJSON(pages, http.MethodGet, "/diary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, `class="edit-entry"`) {
		t.Fatal("expected an inline edit button per entry")
	}
	if !strings.Contains(body, `data-content="今天散步了"`) {
		t.Fatal("edit button should carry the raw entry content")
	}
	if !strings.Contains(body, `class="delete-entry"`) {
		t.Fatal("delete button missing")
	}
}

func TestCalendarPageEditCarriesDescription(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	apiRouter := newTestRouter(api, 1)
	pages := newPageRouter(api, 1)

	w := doJSON(apiRouter, http.MethodPost, "/api/calendar", map[string]any{"date": "2024-03-05", "title": "晨会"})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", w.Code)
	}
	var created calendarEventView
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	w = doJSON(apiRouter, http.MethodPut, "/api/calendar/"+strconv.Itoa(int(created.ID)), map[string]any{
		"title":       "晨会",
		"description": "同步进度",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("seed description failed: %d", w.Code)
	}

	w = doJSON(pages, http.MethodGet, "/calendar?date=2024-03-05", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, `data-description="同步进度"`) {
		t.Fatal("edit button should carry the existing description so the dialog can prefill it")
	}
}
