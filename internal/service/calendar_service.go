package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aidiary/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrEventTitleEmpty 在标题去除空白后为空时返回
	ErrEventTitleEmpty = errors.New("event title is empty")
	// ErrEventDateInvalid 当日期不是合法的 yyyy-MM-dd 时返回
	ErrEventDateInvalid = errors.New("event date is invalid")
	// ErrEventNotFound 在指定日程不存在或不属于当前用户时返回
	ErrEventNotFound = errors.New("calendar event not found")
)

// CalendarService 负责日程数据的增删改查与完成状态切换
type CalendarService struct {
	db      *gorm.DB
	changes ChangeNotifier
}

// EventDetails 定义编辑日程时可修改的字段
type EventDetails struct {
	Title       string
	Description *string
}

// NewCalendarService 构造 CalendarService，changes 可为 nil
func NewCalendarService(gdb *gorm.DB, changes ChangeNotifier) *CalendarService {
	return &CalendarService{db: gdb, changes: changes}
}

// List 返回用户的全部日程，按日期升序
func (s *CalendarService) List(userID uint) ([]db.CalendarEvent, error) {
	var events []db.CalendarEvent
	if err := s.db.Where("user_id = ?", userID).
		Order("date ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}

// ListByDate 返回用户某一天的日程
func (s *CalendarService) ListByDate(userID uint, date string) ([]db.CalendarEvent, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	var events []db.CalendarEvent
	if err := s.db.Where("user_id = ? AND date = ?", userID, normalized).
		Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list calendar events by date: %w", err)
	}
	return events, nil
}

// Create 新建日程，日期统一规范为 yyyy-MM-dd
func (s *CalendarService) Create(userID uint, date, title string) (*db.CalendarEvent, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return nil, ErrEventTitleEmpty
	}

	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	event := db.CalendarEvent{
		Date:   normalized,
		Title:  trimmedTitle,
		UserID: userID,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}

	notifyChange(s.changes, db.TableCalendarEvents)
	return &event, nil
}

// UpdateDetails 修改标题与描述，完成状态不受影响
func (s *CalendarService) UpdateDetails(userID, id uint, details EventDetails) (*db.CalendarEvent, error) {
	trimmedTitle := strings.TrimSpace(details.Title)
	if trimmedTitle == "" {
		return nil, ErrEventTitleEmpty
	}

	event, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	event.Title = trimmedTitle
	event.Description = details.Description

	if err := s.db.Save(event).Error; err != nil {
		return nil, fmt.Errorf("update calendar event: %w", err)
	}

	notifyChange(s.changes, db.TableCalendarEvents)
	return event, nil
}

// ToggleCompleted 翻转完成状态并返回最新记录，连续两次切换恢复原值
func (s *CalendarService) ToggleCompleted(userID, id uint) (*db.CalendarEvent, error) {
	event, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	event.Completed = !event.Completed
	if err := s.db.Model(event).Update("completed", event.Completed).Error; err != nil {
		return nil, fmt.Errorf("toggle calendar event: %w", err)
	}

	notifyChange(s.changes, db.TableCalendarEvents)
	return event, nil
}

// Delete 删除日程，仅限本人
func (s *CalendarService) Delete(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&db.CalendarEvent{})
	if result.Error != nil {
		return fmt.Errorf("delete calendar event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	notifyChange(s.changes, db.TableCalendarEvents)
	return nil
}

func (s *CalendarService) findOwned(userID, id uint) (*db.CalendarEvent, error) {
	var event db.CalendarEvent
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find calendar event: %w", err)
	}
	return &event, nil
}

func normalizeDate(date string) (string, error) {
	trimmed := strings.TrimSpace(date)
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrEventDateInvalid, date)
	}
	return parsed.Format("2006-01-02"), nil
}
