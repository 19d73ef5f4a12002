package services

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Metadata 网页元信息抓取结果
// 除 OgImage 外所有字段都有兜底值,调用方拿到的永远是可用记录
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	OgImage     string `json:"ogImage,omitempty"`
}

// MetadataService 网页元信息抓取服务
type MetadataService struct {
	client *http.Client
}

// NewMetadataService 创建抓取服务实例
func NewMetadataService() *MetadataService {
	return &MetadataService{
		client: &http.Client{
			// 超时兜底,单个慢站点不能拖垮添加书签流程
			Timeout: 8 * time.Second,
		},
	}
}

// 全局单例
var metadataService *MetadataService

// GetMetadataService 获取元信息抓取服务单例
func GetMetadataService() *MetadataService {
	if metadataService == nil {
		metadataService = NewMetadataService()
	}
	return metadataService
}

// 描述最长保留的字符数
const maxDescriptionLen = 200

// Extract 抓取 URL 的标题/描述/图标/预览图
// 只有 URL 本身非法时返回错误;网络失败、超时、非 2xx、解析失败一律降级为默认值
func (s *MetadataService) Extract(rawURL string) (*Metadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return nil, fmt.Errorf("无效的 URL: %q", rawURL)
	}

	baseURL := u.Scheme + "://" + u.Host
	hostname := u.Hostname()

	// 默认值: 标题用去掉 www. 的域名,图标用第三方 favicon 服务
	meta := &Metadata{
		Title:       strings.TrimPrefix(hostname, "www."),
		Description: "",
		Favicon:     fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=64", hostname),
	}

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return meta, nil
	}

	// 设置 User-Agent 模拟浏览器,部分站点会拦截裸请求
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return meta, nil
	}
	defer resp.Body.Close()

	// 非 2xx 直接返回默认值,不解析响应体
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return meta, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return meta, nil
	}

	// 标题: og:title > twitter:title > <title> > 域名兜底
	if t := metaContent(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`); t != "" {
		meta.Title = cleanText(t)
	} else if t := cleanText(doc.Find("title").First().Text()); t != "" {
		meta.Title = t
	}

	// 描述: og:description > description > twitter:description
	if d := metaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`, `meta[name="twitter:description"]`); d != "" {
		meta.Description = truncate(cleanText(d), maxDescriptionLen)
	}

	// 图标: apple-touch-icon 优先,其次标准 icon,都没有时保留 favicon 服务兜底
	if href := linkHref(doc,
		`link[rel="apple-touch-icon"]`,
		`link[rel="apple-touch-icon-precomposed"]`,
		`link[rel="icon"]`,
		`link[rel="shortcut icon"]`,
	); href != "" {
		meta.Favicon = resolveAssetURL(href, u.Scheme, baseURL)
	}

	// 预览图: og:image > twitter:image,允许为空
	if img := metaContent(doc, `meta[property="og:image"]`, `meta[name="twitter:image"]`); img != "" {
		meta.OgImage = resolveAssetURL(img, u.Scheme, baseURL)
	}

	return meta, nil
}

// metaContent 按优先级取第一个非空的 meta content
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

// linkHref 按优先级取第一个非空的 link href
func linkHref(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if href, ok := doc.Find(sel).First().Attr("href"); ok {
			if href = strings.TrimSpace(href); href != "" {
				return href
			}
		}
	}
	return ""
}

// resolveAssetURL 把相对地址补全为绝对地址
func resolveAssetURL(ref, scheme, baseURL string) string {
	switch {
	case strings.HasPrefix(ref, "http"):
		return ref
	case strings.HasPrefix(ref, "//"):
		// 协议相对地址,补页面协议
		return scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		return baseURL + ref
	default:
		return baseURL + "/" + ref
	}
}

// cleanText 压缩空白符: 换行/制表符折叠为单个空格并去掉首尾空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate 截断到 n 个字符,不考虑词边界
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
