package handlers

import (
	"net/http"
	"time"

	"linkdeck/internal/db"
	"linkdeck/internal/models"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{}

func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

type visitRequest struct {
	Path string `json:"path"`
}

// RecordVisit 记录一次页面访问
func (h *AnalyticsHandler) RecordVisit(c *gin.Context) {
	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" {
		req.Path = "/"
	}

	visit := models.Visit{
		Path:      req.Path,
		Referrer:  c.GetHeader("Referer"),
		UserAgent: c.GetHeader("User-Agent"),
	}
	db.DB.Create(&visit)

	OK(c, gin.H{"ok": true})
}

// Stats 访问统计 - 总量、近 30 天每日访问数、点击最多的书签
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	var total int64
	db.DB.Model(&models.Visit{}).Count(&total)

	since := time.Now().AddDate(0, 0, -30)

	// 按天聚合
	type DayCount struct {
		Day   string `json:"day"`
		Count int    `json:"count"`
	}
	var daily []DayCount
	db.DB.Model(&models.Visit{}).
		Select("DATE(created_at) as day, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&daily)

	// 点击最多的书签
	type BidCount struct {
		Bid   string `json:"bid"`
		Count int    `json:"count"`
	}
	var clicks []BidCount
	db.DB.Model(&models.Visit{}).
		Select("bid, COUNT(*) as count").
		Where("bid != ''").
		Group("bid").
		Order("count DESC").
		Limit(10).
		Scan(&clicks)

	// 补书签标题
	type TopBookmark struct {
		Bid   string `json:"id"`
		Title string `json:"title"`
		URL   string `json:"url"`
		Count int    `json:"count"`
	}
	topBookmarks := make([]TopBookmark, 0, len(clicks))
	for _, click := range clicks {
		var bookmark models.Bookmark
		if err := db.DB.Where("bid = ?", click.Bid).First(&bookmark).Error; err != nil {
			// 书签已删除,跳过
			continue
		}
		topBookmarks = append(topBookmarks, TopBookmark{
			Bid:   bookmark.Bid,
			Title: bookmark.Title,
			URL:   bookmark.URL,
			Count: click.Count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        total,
		"daily":        daily,
		"topBookmarks": topBookmarks,
	})
}
