package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
// 镜像应用不做账号体系,用户以展示名唯一标识
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name      string `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Birthdate string `gorm:"size:20" json:"birthdate"`
	Zodiac    string `gorm:"size:20" json:"zodiac"`
	Element   string `gorm:"size:20" json:"element"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
