package db

import (
	"gorm.io/gorm"
)

// DiaryEntry 定义了日记模型，落在 chat_messages 表
// Rating 为 1-4 的情绪评分，允许为空；AIResponse 保存模型生成的鼓励语
// 内容非空校验放在 service 层，提交时去除首尾空白后不得为空
type DiaryEntry struct {
	gorm.Model
	Content    string  `gorm:"not null"`
	AIResponse *string `gorm:"column:ai_response"`
	Rating     *int
	UserID     uint `gorm:"index;not null"`
}

// TableName 沿用原始后端的表名
func (DiaryEntry) TableName() string {
	return TableDiaryEntries
}
