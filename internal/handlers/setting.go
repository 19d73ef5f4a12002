package handlers

import (
	"net/http"

	"linkdeck/internal/db"
	"linkdeck/internal/models"
	"linkdeck/internal/services"
	"linkdeck/internal/utils"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct{}

func NewSettingHandler() *SettingHandler {
	return &SettingHandler{}
}

// Get 站点设置 - 以 map 返回,密码类设置永远不下发
func (h *SettingHandler) Get(c *gin.Context) {
	var settings []models.Setting
	db.DB.Find(&settings)

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		if s.Key == models.SettingAdminPassword {
			continue
		}
		result[s.Key] = s.Value
	}

	OK(c, result)
}

// Update 批量更新设置 - 不存在的键自动创建
func (h *SettingHandler) Update(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	for key, value := range req {
		// 密码不允许走这个入口修改
		if key == models.SettingAdminPassword {
			continue
		}
		var setting models.Setting
		if err := db.DB.Where("key = ?", key).First(&setting).Error; err != nil {
			db.DB.Create(&models.Setting{Key: key, Value: value})
			continue
		}
		db.DB.Model(&setting).Update("value", value)
	}

	h.Get(c)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangePassword 修改管理员密码
func (h *SettingHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "新旧密码不能为空")
		return
	}

	var setting models.Setting
	if err := db.DB.Where("key = ?", models.SettingAdminPassword).First(&setting).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "密码配置缺失")
		return
	}

	if !utils.CheckPasswordHash(req.OldPassword, setting.Value) {
		Fail(c, http.StatusForbidden, "原密码错误")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "密码加密失败")
		return
	}

	db.DB.Model(&setting).Update("value", hash)
	OK(c, gin.H{"ok": true})
}

// UploadWallpaper 上传壁纸并写入 wallpaper_url 设置
func (h *SettingHandler) UploadWallpaper(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		Fail(c, http.StatusBadRequest, "缺少 image 文件")
		return
	}
	defer file.Close()

	result, err := services.UploadImage(file)
	if err != nil {
		Fail(c, http.StatusBadGateway, "壁纸上传失败")
		return
	}

	var setting models.Setting
	if err := db.DB.Where("key = ?", models.SettingWallpaperURL).First(&setting).Error; err != nil {
		db.DB.Create(&models.Setting{Key: models.SettingWallpaperURL, Value: result.URL})
	} else {
		db.DB.Model(&setting).Update("value", result.URL)
	}

	OK(c, gin.H{"url": result.URL})
}
