package handlers

import (
	"net/http"

	"linkdeck/internal/db"
	"linkdeck/internal/middleware"
	"linkdeck/internal/models"
	"linkdeck/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录 - 校验密码后写入会话
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "password 不能为空")
		return
	}

	var setting models.Setting
	if err := db.DB.Where("key = ?", models.SettingAdminPassword).First(&setting).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "密码配置缺失")
		return
	}

	if !utils.CheckPasswordHash(req.Password, setting.Value) {
		Fail(c, http.StatusForbidden, "密码错误")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.AdminSessionKey, true)
	if err := session.Save(); err != nil {
		Fail(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	OK(c, gin.H{"isAdmin": true})
}

// Logout 退出登录
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	OK(c, gin.H{"isAdmin": false})
}

// Me 当前会话状态
func (h *AuthHandler) Me(c *gin.Context) {
	OK(c, gin.H{"isAdmin": middleware.IsAdmin(c)})
}
