package model

import "time"

// FortuneLog 占卜结果记录
type FortuneLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uint   `gorm:"index" json:"user_id"`
	Date    string `gorm:"size:20;index" json:"date"`
	Fortune string `gorm:"type:text" json:"fortune"`
}

// TableName 指定表名
func (FortuneLog) TableName() string {
	return "fortune_logs"
}
