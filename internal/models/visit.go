package models

import (
	"time"
)

// Visit 访问记录 - 页面浏览和书签点击
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Path      string    `gorm:"size:255" json:"path"`
	Bid       string    `gorm:"index;size:8" json:"bid"` // 点击的书签,页面浏览时为空
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
