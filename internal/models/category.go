package models

import (
	"time"
)

type Category struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Cid        string    `gorm:"uniqueIndex;size:8;not null" json:"id"`
	Name       string    `gorm:"not null;unique" json:"name"`
	Icon       string    `json:"icon"`
	OrderIndex int       `gorm:"default:0" json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
