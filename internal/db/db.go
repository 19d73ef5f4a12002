package db

import (
	"log"
	"os"

	"linkdeck/internal/models"
	"linkdeck/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("LINKDECK_DB")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "linkdeck.db"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Bookmark{},
		&models.Category{},
		&models.Setting{},
		&models.Quote{},
		&models.Visit{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed defaults
	seedSettings()
	seedCategories()
	seedQuotes()
}

// seedSettings 初始化默认站点设置和管理员密码
func seedSettings() {
	defaults := map[string]string{
		models.SettingSiteTitle:    "LinkDeck",
		models.SettingTheme:        "dark",
		models.SettingWallpaperURL: "",
		models.SettingClockFormat:  "24h",
	}

	for key, value := range defaults {
		var count int64
		DB.Model(&models.Setting{}).Where("key = ?", key).Count(&count)
		if count == 0 {
			if err := DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				log.Printf("Failed to seed setting %s: %v", key, err)
			}
		}
	}

	// 管理员密码只在首次启动时写入,存 bcrypt hash
	var count int64
	DB.Model(&models.Setting{}).Where("key = ?", models.SettingAdminPassword).Count(&count)
	if count == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin"
			log.Println("ADMIN_PASSWORD not set, using default password 'admin'")
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		if err := DB.Create(&models.Setting{Key: models.SettingAdminPassword, Value: hash}).Error; err != nil {
			log.Printf("Failed to seed admin password: %v", err)
		}
	}
}

func seedCategories() {
	// 检查是否已有分类数据
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	// 创建预设分类
	categories := []models.Category{
		{Cid: utils.RandStringBytesMaskImpr(8), Name: "常用", Icon: "star", OrderIndex: 1},
		{Cid: utils.RandStringBytesMaskImpr(8), Name: "工作", Icon: "briefcase", OrderIndex: 2},
		{Cid: utils.RandStringBytesMaskImpr(8), Name: "开发", Icon: "code", OrderIndex: 3},
		{Cid: utils.RandStringBytesMaskImpr(8), Name: "娱乐", Icon: "gamepad-2", OrderIndex: 4},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}

func seedQuotes() {
	var count int64
	DB.Model(&models.Quote{}).Count(&count)
	if count > 0 {
		return
	}

	quotes := []models.Quote{
		{Content: "书山有路勤为径。", Author: "韩愈", IsActive: true},
		{Content: "Stay hungry, stay foolish.", Author: "Stewart Brand", IsActive: true},
	}

	for _, quote := range quotes {
		if err := DB.Create(&quote).Error; err != nil {
			log.Printf("Failed to create quote: %v", err)
		}
	}
}
