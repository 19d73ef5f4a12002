package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"linkdeck/internal/utils"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Article 稍后读正文抓取结果
type Article struct {
	Title   string `json:"title"`
	Byline  string `json:"byline"`
	Content string `json:"content"` // 净化后的 HTML
	Length  int    `json:"length"`
}

// ReaderService 稍后读正文抓取服务
type ReaderService struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

// NewReaderService 创建抓取服务实例
func NewReaderService() *ReaderService {
	return &ReaderService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		sanitizer: bluemonday.UGCPolicy(), // 允许用户生成内容的安全策略
	}
}

// 全局单例
var readerService *ReaderService

// GetReaderService 获取 Reader 服务单例
func GetReaderService() *ReaderService {
	if readerService == nil {
		readerService = NewReaderService()
	}
	return readerService
}

// FetchArticle 从 URL 抓取正文内容
// 使用 go-readability 提取正文,然后用 bluemonday 清洗
func (s *ReaderService) FetchArticle(rawURL string) (*Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("无效的 URL: %w", err)
	}

	// 1. 发送 HTTP 请求获取 HTML
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置 User-Agent 模拟浏览器
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP 状态码: %d", resp.StatusCode)
	}

	// 读取响应体
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 2. 使用 go-readability 提取正文
	article, err := readability.FromReader(strings.NewReader(string(body)), u)
	if err != nil {
		return nil, fmt.Errorf("解析正文失败: %w", err)
	}

	// 3. 使用 bluemonday 清洗 HTML(移除潜在的恶意内容),再补图片加载属性
	cleanContent := utils.EnhanceArticleHTML(s.sanitizer.Sanitize(article.Content))

	return &Article{
		Title:   article.Title,
		Byline:  article.Byline,
		Content: cleanContent,
		Length:  article.Length,
	}, nil
}
