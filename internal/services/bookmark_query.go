package services

import (
	"math"
	"strings"

	"linkdeck/internal/db"
	"linkdeck/internal/models"

	"gorm.io/gorm"
)

// CategoryUnfiled category 参数的哨兵值,表示筛选未分类书签
// 哨兵永远优先,不会和真实分类 ID 做字面匹配
const CategoryUnfiled = "uncategorized"

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// sortColumns 允许排序的字段白名单
var sortColumns = map[string]string{
	"orderIndex": "order_index",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"url":        "url",
}

// BookmarkListParams 书签列表查询参数
// 所有筛选条件都是可选的,同时传入时取 AND 组合
type BookmarkListParams struct {
	Page        int
	PageSize    int
	Search      string
	Category    string
	IsPinned    *bool
	IsReadLater *bool
	SortBy      string
	SortOrder   string
}

// Pagination 分页元信息
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// BookmarkPage 一页书签及分页信息
type BookmarkPage struct {
	Items      []models.Bookmark `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// normalize 越界参数兜底,不报错
func (p *BookmarkListParams) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "orderIndex"
	}
	if p.SortOrder != "desc" {
		p.SortOrder = "asc"
	}
}

// filtered 组合筛选条件,Count 和 Find 各构建一次查询链
func (p *BookmarkListParams) filtered(tx *gorm.DB) *gorm.DB {
	if p.Search != "" {
		pattern := "%" + strings.ToLower(p.Search) + "%"
		tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(url) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern, pattern)
	}
	if p.Category != "" {
		if p.Category == CategoryUnfiled {
			tx = tx.Where("(category IS NULL OR category = '')")
		} else {
			tx = tx.Where("category = ?", p.Category)
		}
	}
	if p.IsPinned != nil {
		tx = tx.Where("is_pinned = ?", *p.IsPinned)
	}
	if p.IsReadLater != nil {
		tx = tx.Where("is_read_later = ?", *p.IsReadLater)
	}
	return tx
}

// ListBookmarks 组合筛选/排序/分页条件查询书签
// 置顶书签永远排在最前,与请求的排序字段无关
func ListBookmarks(p BookmarkListParams) (*BookmarkPage, error) {
	p.normalize()

	// 查询总数(忽略分页)
	var total int64
	if err := p.filtered(db.DB.Model(&models.Bookmark{})).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(p.PageSize)))
	offset := (p.Page - 1) * p.PageSize

	direction := "ASC"
	if p.SortOrder == "desc" {
		direction = "DESC"
	}
	order := "is_pinned DESC, " + sortColumns[p.SortBy] + " " + direction
	if p.SortBy == "orderIndex" {
		// 手动排序相同序号时,新书签优先
		order += ", created_at DESC"
	}

	items := make([]models.Bookmark, 0, p.PageSize)
	err := p.filtered(db.DB.Model(&models.Bookmark{})).
		Order(order).
		Limit(p.PageSize).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &BookmarkPage{
		Items: items,
		Pagination: Pagination{
			Page:       p.Page,
			PageSize:   p.PageSize,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    p.Page < totalPages,
		},
	}, nil
}
