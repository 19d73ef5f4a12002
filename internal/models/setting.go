package models

import (
	"time"
)

// Setting 站点设置 - key/value 存储
// 站点标题、主题、壁纸地址、时钟格式等都存在这里
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// 预留的设置键
const (
	SettingSiteTitle     = "site_title"
	SettingTheme         = "theme"
	SettingWallpaperURL  = "wallpaper_url"
	SettingClockFormat   = "clock_format"
	SettingAdminPassword = "admin_password" // bcrypt hash,永远不下发给前端
)
