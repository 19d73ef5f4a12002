package handlers

import (
	"net/http"

	"linkdeck/internal/db"
	"linkdeck/internal/models"
	"linkdeck/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 分类列表,按手动排序返回
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("order_index ASC, id ASC").Find(&categories)
	OK(c, categories)
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

// Create 新建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "name 不能为空")
		return
	}

	var maxIndex int
	db.DB.Model(&models.Category{}).Select("COALESCE(MAX(order_index), 0)").Scan(&maxIndex)

	category := models.Category{
		Cid:        utils.RandStringBytesMaskImpr(8),
		Name:       req.Name,
		Icon:       req.Icon,
		OrderIndex: maxIndex + 1,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		// 名称有唯一约束,重名时返回冲突
		Fail(c, http.StatusConflict, "分类已存在")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update 更新分类名称/图标
func (h *CategoryHandler) Update(c *gin.Context) {
	cid := c.Param("cid")

	var category models.Category
	if err := db.DB.Where("cid = ?", cid).First(&category).Error; err != nil {
		NotFound(c, "分类不存在")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "name 不能为空")
		return
	}

	category.Name = req.Name
	category.Icon = req.Icon
	if err := db.DB.Save(&category).Error; err != nil {
		Fail(c, http.StatusConflict, "分类名称冲突")
		return
	}

	OK(c, category)
}

// Delete 删除分类
// 分类下的书签归入未分类,不会级联删除
func (h *CategoryHandler) Delete(c *gin.Context) {
	cid := c.Param("cid")

	var category models.Category
	if err := db.DB.Where("cid = ?", cid).First(&category).Error; err != nil {
		NotFound(c, "分类不存在")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Bookmark{}).Where("category = ?", category.Cid).
			Update("category", "").Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&category).Error
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, "删除分类失败")
		return
	}

	OK(c, gin.H{"deleted": cid})
}

// Reorder 分类拖拽排序
func (h *CategoryHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "ids 不能为空")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for i, cid := range req.IDs {
			if err := tx.Model(&models.Category{}).Where("cid = ?", cid).
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
