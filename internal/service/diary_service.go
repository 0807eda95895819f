package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aidiary/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrDiaryContentEmpty 在内容去除空白后为空时返回
	ErrDiaryContentEmpty = errors.New("diary content is empty")
	// ErrDiaryRatingInvalid 当评分超出 1-4 取值域时返回
	ErrDiaryRatingInvalid = errors.New("diary rating out of range")
	// ErrDiaryNotFound 在指定日记不存在或不属于当前用户时返回
	ErrDiaryNotFound = errors.New("diary entry not found")
)

// DiaryService 负责日记数据的增删改查
// 所有读写均以 user_id 限定，行级归属在这里收口
type DiaryService struct {
	db      *gorm.DB
	changes ChangeNotifier
}

// DiaryFilter 描述列表筛选条件，Rating 为空表示不过滤情绪
type DiaryFilter struct {
	Rating *int
}

// NewDiaryService 构造 DiaryService，changes 可为 nil
func NewDiaryService(gdb *gorm.DB, changes ChangeNotifier) *DiaryService {
	return &DiaryService{db: gdb, changes: changes}
}

// List 返回用户的日记，按创建时间倒序，可按情绪评分过滤
func (s *DiaryService) List(userID uint, filter DiaryFilter) ([]db.DiaryEntry, error) {
	var entries []db.DiaryEntry

	query := s.db.Where("user_id = ?", userID)
	if filter.Rating != nil {
		query = query.Where("rating = ?", *filter.Rating)
	}

	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}

	return entries, nil
}

// Create 新建日记，内容去除首尾空白后不得为空
func (s *DiaryService) Create(userID uint, content string, rating *int) (*db.DiaryEntry, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrDiaryContentEmpty
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	entry := db.DiaryEntry{
		Content: trimmed,
		Rating:  rating,
		UserID:  userID,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create diary entry: %w", err)
	}

	notifyChange(s.changes, db.TableDiaryEntries)
	return &entry, nil
}

// CreateWithReply 持久化日记及模型生成的回复，由推理接口调用
func (s *DiaryService) CreateWithReply(userID uint, content, reply string) (*db.DiaryEntry, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrDiaryContentEmpty
	}

	entry := db.DiaryEntry{
		Content:    trimmed,
		AIResponse: &reply,
		UserID:     userID,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create diary entry with reply: %w", err)
	}

	notifyChange(s.changes, db.TableDiaryEntries)
	return &entry, nil
}

// UpdateContent 修改日记正文，仅限本人
func (s *DiaryService) UpdateContent(userID, id uint, content string) (*db.DiaryEntry, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrDiaryContentEmpty
	}

	var entry db.DiaryEntry
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiaryNotFound
		}
		return nil, fmt.Errorf("find diary entry: %w", err)
	}

	entry.Content = trimmed
	if err := s.db.Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("update diary entry: %w", err)
	}

	notifyChange(s.changes, db.TableDiaryEntries)
	return &entry, nil
}

// Delete 删除日记，仅限本人
func (s *DiaryService) Delete(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&db.DiaryEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete diary entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDiaryNotFound
	}

	notifyChange(s.changes, db.TableDiaryEntries)
	return nil
}

func validateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 4 {
		return fmt.Errorf("%w: %d", ErrDiaryRatingInvalid, *rating)
	}
	return nil
}
