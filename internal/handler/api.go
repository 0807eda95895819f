package handler

import (
	"github.com/aidiary/internal/config"
	"github.com/aidiary/internal/realtime"
	"github.com/aidiary/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	diary    *service.DiaryService
	calendar *service.CalendarService
	replies  service.DiaryReplier
	hub      *realtime.Hub
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig, hub *realtime.Hub) *API {
	var changes service.ChangeNotifier
	if hub != nil {
		changes = hub
	}

	diaryService := service.NewDiaryService(gdb, changes)

	return &API{
		db:       gdb,
		diary:    diaryService,
		calendar: service.NewCalendarService(gdb, changes),
		replies:  service.NewAIReplyService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, diaryService),
		hub:      hub,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

// SetReplier 覆盖日记回复生成器，主要用于测试。
func (a *API) SetReplier(r service.DiaryReplier) {
	a.replies = r
}
