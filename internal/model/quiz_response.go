package model

import "time"

// QuizResponse 问卷作答记录
// 五个维度: emotion/focus/intuition/trust/reflection
type QuizResponse struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint   `gorm:"index" json:"user_id"`
	Date       string `gorm:"size:20;index" json:"date"`
	Emotion    int    `json:"emotion"`
	Focus      int    `json:"focus"`
	Intuition  int    `json:"intuition"`
	Trust      int    `json:"trust"`
	Reflection int    `json:"reflection"`
}

// TableName 指定表名
func (QuizResponse) TableName() string {
	return "quiz_responses"
}
