package handlers

import (
	"fmt"
	"net/http"
	"time"

	"linkdeck/internal/services"
	"linkdeck/internal/utils"

	"github.com/gin-gonic/gin"
)

type MetadataHandler struct{}

func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// Extract 抓取网页元信息
// 只有 URL 非法返回 400,其余情况永远返回可用记录(失败降级为默认值)
func (h *MetadataHandler) Extract(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		Fail(c, http.StatusBadRequest, "url 参数不能为空")
		return
	}

	cacheKey := fmt.Sprintf("meta:%s", rawURL)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if meta, ok := cached.(*services.Metadata); ok {
			OK(c, meta)
			return
		}
	}

	meta, err := services.GetMetadataService().Extract(rawURL)
	if err != nil {
		Fail(c, http.StatusBadRequest, "无效的 URL")
		return
	}

	// 写入缓存,有效期 1 小时
	utils.GetCache().Set(cacheKey, meta, 1*time.Hour)

	OK(c, meta)
}
