package handlers

import (
	"fmt"
	"net/http"
	"time"

	"linkdeck/internal/db"
	"linkdeck/internal/models"
	"linkdeck/internal/services"
	"linkdeck/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

// List 书签列表 - 支持搜索/分类/置顶/稍后读筛选和排序分页
func (h *BookmarkHandler) List(c *gin.Context) {
	params := services.BookmarkListParams{
		Page:        utils.QueryInt(c.Query("page"), 1),
		PageSize:    utils.QueryInt(c.Query("pageSize"), 0),
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		IsPinned:    utils.QueryBool(c.Query("isPinned")),
		IsReadLater: utils.QueryBool(c.Query("isReadLater")),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	}

	page, err := services.ListBookmarks(params)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "查询书签失败")
		return
	}

	OK(c, page)
}

type createBookmarkRequest struct {
	URL         string `json:"url" binding:"required"`
	InternalURL string `json:"internalUrl"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	OgImage     string `json:"ogImage"`
	Icon        string `json:"icon"`
	IconURL     string `json:"iconUrl"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	IsPinned    bool   `json:"isPinned"`
	IsReadLater bool   `json:"isReadLater"`
}

// Create 添加书签
// 客户端没给标题/图标时用元信息抓取结果补全
func (h *BookmarkHandler) Create(c *gin.Context) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "url 不能为空")
		return
	}

	if req.Title == "" || req.Favicon == "" {
		meta, err := services.GetMetadataService().Extract(req.URL)
		if err != nil {
			Fail(c, http.StatusBadRequest, "无效的 URL")
			return
		}
		if req.Title == "" {
			req.Title = meta.Title
		}
		if req.Favicon == "" {
			req.Favicon = meta.Favicon
		}
		if req.Description == "" {
			req.Description = meta.Description
		}
		if req.OgImage == "" {
			req.OgImage = meta.OgImage
		}
	}

	// 新书签排在手动排序的末尾
	var maxIndex int
	db.DB.Model(&models.Bookmark{}).Select("COALESCE(MAX(order_index), 0)").Scan(&maxIndex)

	bookmark := models.Bookmark{
		Bid:         utils.RandStringBytesMaskImpr(8),
		URL:         req.URL,
		InternalURL: req.InternalURL,
		Title:       req.Title,
		Description: req.Description,
		Favicon:     req.Favicon,
		OgImage:     req.OgImage,
		Icon:        req.Icon,
		IconURL:     req.IconURL,
		Category:    req.Category,
		Tags:        req.Tags,
		OrderIndex:  maxIndex + 1,
		IsPinned:    req.IsPinned,
		IsReadLater: req.IsReadLater,
	}

	if err := db.DB.Create(&bookmark).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "添加书签失败")
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

type updateBookmarkRequest struct {
	URL         *string `json:"url"`
	InternalURL *string `json:"internalUrl"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Favicon     *string `json:"favicon"`
	OgImage     *string `json:"ogImage"`
	Icon        *string `json:"icon"`
	IconURL     *string `json:"iconUrl"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
	OrderIndex  *int    `json:"orderIndex"`
	IsPinned    *bool   `json:"isPinned"`
	IsReadLater *bool   `json:"isReadLater"`
	IsRead      *bool   `json:"isRead"`
}

// Update 部分更新书签 - 未传的字段保持原值
func (h *BookmarkHandler) Update(c *gin.Context) {
	bid := c.Param("bid")

	var bookmark models.Bookmark
	if err := db.DB.Where("bid = ?", bid).First(&bookmark).Error; err != nil {
		NotFound(c, "书签不存在")
		return
	}

	var req updateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	updates := map[string]interface{}{}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.InternalURL != nil {
		updates["internal_url"] = *req.InternalURL
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Favicon != nil {
		updates["favicon"] = *req.Favicon
	}
	if req.OgImage != nil {
		updates["og_image"] = *req.OgImage
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.IconURL != nil {
		updates["icon_url"] = *req.IconURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}
	if req.IsPinned != nil {
		updates["is_pinned"] = *req.IsPinned
	}
	if req.IsReadLater != nil {
		updates["is_read_later"] = *req.IsReadLater
	}
	if req.IsRead != nil {
		updates["is_read"] = *req.IsRead
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&bookmark).Updates(updates).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "更新书签失败")
			return
		}
	}

	db.DB.Where("bid = ?", bid).First(&bookmark)
	OK(c, bookmark)
}

// Delete 删除书签 - 硬删除
func (h *BookmarkHandler) Delete(c *gin.Context) {
	bid := c.Param("bid")

	var bookmark models.Bookmark
	if err := db.DB.Where("bid = ?", bid).First(&bookmark).Error; err != nil {
		NotFound(c, "书签不存在")
		return
	}

	if err := db.DB.Unscoped().Delete(&bookmark).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "删除书签失败")
		return
	}

	OK(c, gin.H{"deleted": bid})
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// Reorder 拖拽排序 - 按传入顺序重写 orderIndex
func (h *BookmarkHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "ids 不能为空")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for i, bid := range req.IDs {
			if err := tx.Model(&models.Bookmark{}).Where("bid = ?", bid).
				Update("order_index", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, "排序保存失败")
		return
	}

	OK(c, gin.H{"count": len(req.IDs)})
}

// TogglePin 置顶/取消置顶
func (h *BookmarkHandler) TogglePin(c *gin.Context) {
	bid := c.Param("bid")

	var bookmark models.Bookmark
	if err := db.DB.Where("bid = ?", bid).First(&bookmark).Error; err != nil {
		NotFound(c, "书签不存在")
		return
	}

	bookmark.IsPinned = !bookmark.IsPinned
	if err := db.DB.Model(&bookmark).Update("is_pinned", bookmark.IsPinned).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "更新失败")
		return
	}

	OK(c, bookmark)
}

// ToggleReadLater 加入/移出稍后读
func (h *BookmarkHandler) ToggleReadLater(c *gin.Context) {
	bid := c.Param("bid")

	var bookmark models.Bookmark
	if err := db.DB.Where("bid = ?", bid).First(&bookmark).Error; err != nil {
		NotFound(c, "书签不存在")
		return
	}

	bookmark.IsReadLater = !bookmark.IsReadLater
	updates := map[string]interface{}{"is_read_later": bookmark.IsReadLater}
	if !bookmark.IsReadLater {
		// 移出稍后读时清掉已读标记
		bookmark.IsRead = false
		updates["is_read"] = false
	}
	if err := db.DB.Model(&bookmark).Updates(updates).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "更新失败")
		return
	}

	OK(c, bookmark)
}

// Content 稍后读正文 - 抓取并缓存可读化的文章内容
func (h *BookmarkHandler) Content(c *gin.Context) {
	bid := c.Param("bid")

	var bookmark models.Bookmark
	if err := db.DB.Where("bid = ?", bid).First(&bookmark).Error; err != nil {
		NotFound(c, "书签不存在")
		return
	}

	cacheKey := fmt.Sprintf("reader:%s", bid)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if article, ok := cached.(*services.Article); ok {
			h.markRead(&bookmark)
			OK(c, article)
			return
		}
	}

	article, err := services.GetReaderService().FetchArticle(bookmark.URL)
	if err != nil {
		Fail(c, http.StatusBadGateway, "正文抓取失败")
		return
	}

	// 写入缓存,有效期 30 分钟
	utils.GetCache().Set(cacheKey, article, 30*time.Minute)

	h.markRead(&bookmark)
	OK(c, article)
}

func (h *BookmarkHandler) markRead(bookmark *models.Bookmark) {
	if !bookmark.IsRead {
		db.DB.Model(bookmark).Update("is_read", true)
	}
}

// Visit 记录书签点击,用于访问统计
func (h *BookmarkHandler) Visit(c *gin.Context) {
	bid := c.Param("bid")

	var bookmark models.Bookmark
	if err := db.DB.Where("bid = ?", bid).First(&bookmark).Error; err != nil {
		NotFound(c, "书签不存在")
		return
	}

	visit := models.Visit{
		Path:      bookmark.URL,
		Bid:       bookmark.Bid,
		Referrer:  c.GetHeader("Referer"),
		UserAgent: c.GetHeader("User-Agent"),
	}
	db.DB.Create(&visit)

	OK(c, gin.H{"ok": true})
}
