package router

import (
	"linkdeck/internal/handlers"
	"linkdeck/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	bookmarkHandler := handlers.NewBookmarkHandler()
	categoryHandler := handlers.NewCategoryHandler()
	settingHandler := handlers.NewSettingHandler()
	quoteHandler := handlers.NewQuoteHandler()
	metadataHandler := handlers.NewMetadataHandler()
	analyticsHandler := handlers.NewAnalyticsHandler()

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/bookmarks", bookmarkHandler.List)                  // 书签列表(筛选/排序/分页)
	api.POST("/bookmarks", bookmarkHandler.Create)               // 添加书签
	api.PATCH("/bookmarks/:bid", bookmarkHandler.Update)         // 部分更新书签
	api.DELETE("/bookmarks/:bid", bookmarkHandler.Delete)        // 删除书签
	api.POST("/bookmarks/reorder", bookmarkHandler.Reorder)      // 拖拽排序
	api.POST("/bookmarks/:bid/pin", bookmarkHandler.TogglePin)   // 置顶/取消置顶
	api.POST("/bookmarks/:bid/read-later", bookmarkHandler.ToggleReadLater) // 稍后读开关
	api.GET("/bookmarks/:bid/content", bookmarkHandler.Content)  // 稍后读正文
	api.POST("/bookmarks/:bid/visit", bookmarkHandler.Visit)     // 记录书签点击

	api.GET("/metadata", metadataHandler.Extract) // 网页元信息抓取
	api.GET("/categories", categoryHandler.List)  // 分类列表
	api.GET("/settings", settingHandler.Get)      // 站点设置
	api.GET("/quotes/random", quoteHandler.Random) // 随机格言

	api.POST("/analytics/visit", analyticsHandler.RecordVisit) // 记录页面访问

	api.POST("/auth/login", authHandler.Login)   // 管理员登录
	api.POST("/auth/logout", authHandler.Logout) // 退出登录
	api.GET("/auth/me", authHandler.Me)          // 会话状态

	// 管理路由 (Admin Routes)
	admin := api.Group("/")
	admin.Use(middleware.AuthRequired())
	{
		admin.POST("/categories", categoryHandler.Create)        // 新建分类
		admin.PUT("/categories/:cid", categoryHandler.Update)    // 更新分类
		admin.DELETE("/categories/:cid", categoryHandler.Delete) // 删除分类
		admin.POST("/categories/reorder", categoryHandler.Reorder)

		admin.PUT("/settings", settingHandler.Update)                    // 批量更新设置
		admin.POST("/settings/password", settingHandler.ChangePassword)  // 修改管理员密码
		admin.POST("/settings/wallpaper", settingHandler.UploadWallpaper) // 上传壁纸

		admin.GET("/quotes", quoteHandler.List)          // 格言列表
		admin.POST("/quotes", quoteHandler.Create)       // 新建格言
		admin.PUT("/quotes/:id", quoteHandler.Update)    // 更新格言
		admin.DELETE("/quotes/:id", quoteHandler.Delete) // 删除格言

		admin.GET("/analytics/stats", analyticsHandler.Stats) // 访问统计
	}
}
