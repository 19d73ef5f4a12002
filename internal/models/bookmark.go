package models

import (
	"time"
)

// Bookmark 书签模型 - 首页卡片的核心数据
type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Bid         string    `gorm:"uniqueIndex;size:8;not null" json:"id"`
	URL         string    `gorm:"not null" json:"url"`
	InternalURL string    `json:"internalUrl"` // 内网地址,局域网环境优先使用
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Favicon     string    `json:"favicon"`
	OgImage     string    `json:"ogImage"`
	Icon        string    `json:"icon"`    // 图标名称 (如 lucide 图标名)
	IconURL     string    `json:"iconUrl"` // 自定义图标地址
	Category    string    `gorm:"index;size:8" json:"category"` // 分类 Cid,空字符串表示未分类
	Tags        string    `json:"tags"`
	OrderIndex  int       `gorm:"default:0;index" json:"orderIndex"` // 手动排序序号
	IsPinned    bool      `gorm:"default:false" json:"isPinned"`
	IsReadLater bool      `gorm:"default:false" json:"isReadLater"`
	IsRead      bool      `gorm:"default:false" json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// No DeletedAt for hard delete
}
