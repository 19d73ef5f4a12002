package models

import (
	"time"
)

// Quote 首页随机展示的格言,内容支持 Markdown
type Quote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `json:"author"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 非数据库字段,随机接口返回时填充
	ContentHTML string `gorm:"-" json:"contentHtml,omitempty"`
}
