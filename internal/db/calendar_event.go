package db

import (
	"gorm.io/gorm"
)

// CalendarEvent 定义了日程模型
// Date 统一存储为 yyyy-MM-dd 字符串，避免时区偏移
// Completed 表示完成状态，独立于标题/描述的编辑
type CalendarEvent struct {
	gorm.Model
	Date        string `gorm:"size:10;index;not null"`
	Title       string `gorm:"not null"`
	Description *string
	Completed   bool `gorm:"default:false"`
	UserID      uint `gorm:"index;not null"`
}

// TableName 沿用原始后端的表名
func (CalendarEvent) TableName() string {
	return TableCalendarEvents
}
