package handlers

import (
	"math/rand"
	"net/http"

	"linkdeck/internal/db"
	"linkdeck/internal/models"
	"linkdeck/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct{}

func NewQuoteHandler() *QuoteHandler {
	return &QuoteHandler{}
}

// Random 随机返回一条启用的格言,内容渲染为净化后的 HTML
func (h *QuoteHandler) Random(c *gin.Context) {
	var quotes []models.Quote
	db.DB.Where("is_active = ?", true).Find(&quotes)

	if len(quotes) == 0 {
		OK(c, nil)
		return
	}

	quote := quotes[rand.Intn(len(quotes))]
	quote.ContentHTML = utils.RenderMarkdown(quote.Content)
	OK(c, quote)
}

// List 全部格言(管理端)
func (h *QuoteHandler) List(c *gin.Context) {
	var quotes []models.Quote
	db.DB.Order("id ASC").Find(&quotes)
	OK(c, quotes)
}

type quoteRequest struct {
	Content  string `json:"content" binding:"required"`
	Author   string `json:"author"`
	IsActive *bool  `json:"isActive"`
}

// Create 新建格言
func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "content 不能为空")
		return
	}

	quote := models.Quote{
		Content:  req.Content,
		Author:   req.Author,
		IsActive: true,
	}
	if req.IsActive != nil {
		quote.IsActive = *req.IsActive
	}

	if err := db.DB.Create(&quote).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "保存失败")
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// Update 更新格言内容或启用状态
func (h *QuoteHandler) Update(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var quote models.Quote
	if err := db.DB.First(&quote, id).Error; err != nil {
		NotFound(c, "格言不存在")
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "content 不能为空")
		return
	}

	quote.Content = req.Content
	quote.Author = req.Author
	if req.IsActive != nil {
		quote.IsActive = *req.IsActive
	}

	if err := db.DB.Save(&quote).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "保存失败")
		return
	}

	OK(c, quote)
}

// Delete 删除格言
func (h *QuoteHandler) Delete(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	if err := db.DB.Unscoped().Delete(&models.Quote{}, id).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "删除失败")
		return
	}

	OK(c, gin.H{"deleted": id})
}
