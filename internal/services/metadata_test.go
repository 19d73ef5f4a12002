package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func htmlPage(head string) string {
	return "<html><head>" + head + "</head><body>hi</body></html>"
}

func serveHTML(t *testing.T, head string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, htmlPage(head))
	}))
}

func hostOf(t *testing.T, serverURL string) string {
	t.Helper()
	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	return u.Hostname()
}

func TestExtractTitlePriority(t *testing.T) {
	server := serveHTML(t, `<meta property="og:title" content="OG 标题">
		<meta name="twitter:title" content="Twitter Title">
		<title>Plain Title</title>`)
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.Title != "OG 标题" {
		t.Errorf("Expected og:title to win, got %q", meta.Title)
	}
}

func TestExtractTitleFallbackToTitleTag(t *testing.T) {
	server := serveHTML(t, `<title>  Plain
		Title  </title>`)
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.Title != "Plain Title" {
		t.Errorf("Expected cleaned <title> text, got %q", meta.Title)
	}
}

func TestExtractDefaultsWhenNoTags(t *testing.T) {
	server := serveHTML(t, ``)
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	hostname := hostOf(t, server.URL)
	if meta.Title != hostname {
		t.Errorf("Expected hostname fallback %q, got %q", hostname, meta.Title)
	}
	if meta.Description != "" {
		t.Errorf("Expected empty description, got %q", meta.Description)
	}
	wantFavicon := fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=64", hostname)
	if meta.Favicon != wantFavicon {
		t.Errorf("Expected favicon service fallback %q, got %q", wantFavicon, meta.Favicon)
	}
	if meta.OgImage != "" {
		t.Errorf("Expected no ogImage, got %q", meta.OgImage)
	}
}

func TestExtractNon2xxReturnsDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		// 响应体里的标签必须被忽略
		fmt.Fprint(w, htmlPage(`<meta property="og:title" content="Should Not Appear">`))
	}))
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.Title != hostOf(t, server.URL) {
		t.Errorf("Expected default title on 404, got %q", meta.Title)
	}
}

func TestExtractNetworkErrorReturnsDefaults(t *testing.T) {
	server := serveHTML(t, ``)
	serverURL := server.URL
	server.Close() // 连接必然失败

	meta, err := NewMetadataService().Extract(serverURL)
	if err != nil {
		t.Fatalf("Extract should not error on network failure: %v", err)
	}
	if meta.Title != hostOf(t, serverURL) {
		t.Errorf("Expected default title, got %q", meta.Title)
	}
	if meta.Favicon == "" {
		t.Error("Expected non-empty favicon fallback")
	}
}

func TestExtractInvalidURL(t *testing.T) {
	s := NewMetadataService()
	for _, raw := range []string{"://bad", "example.com/no-scheme", ""} {
		if _, err := s.Extract(raw); err == nil {
			t.Errorf("Expected error for %q", raw)
		}
	}
}

func TestExtractFaviconResolution(t *testing.T) {
	cases := []struct {
		href string
		want func(base string) string
	}{
		{"/favicon.ico", func(base string) string { return base + "/favicon.ico" }},
		{"icon.png", func(base string) string { return base + "/icon.png" }},
		{"//cdn.example.com/icon.png", func(base string) string { return "http://cdn.example.com/icon.png" }},
		{"https://static.example.com/icon.png", func(base string) string { return "https://static.example.com/icon.png" }},
	}

	for _, tc := range cases {
		server := serveHTML(t, fmt.Sprintf(`<link rel="icon" href="%s">`, tc.href))
		meta, err := NewMetadataService().Extract(server.URL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		want := tc.want(server.URL)
		if meta.Favicon != want {
			t.Errorf("href=%q: expected %q, got %q", tc.href, want, meta.Favicon)
		}
		server.Close()
	}
}

func TestExtractAppleTouchIconPreferred(t *testing.T) {
	server := serveHTML(t, `<link rel="icon" href="/favicon.ico">
		<link rel="apple-touch-icon" href="/apple.png">`)
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.Favicon != server.URL+"/apple.png" {
		t.Errorf("Expected apple-touch-icon to win, got %q", meta.Favicon)
	}
}

func TestExtractDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("词a ", 150) // 清理后远超 200 字符
	server := serveHTML(t, fmt.Sprintf(`<meta name="description" content="%s">`, long))
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got := len([]rune(meta.Description)); got != maxDescriptionLen {
		t.Errorf("Expected description truncated to %d chars, got %d", maxDescriptionLen, got)
	}
}

func TestExtractOgImage(t *testing.T) {
	server := serveHTML(t, `<meta property="og:image" content="/preview.png">`)
	defer server.Close()

	meta, err := NewMetadataService().Extract(server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.OgImage != server.URL+"/preview.png" {
		t.Errorf("Expected resolved og:image, got %q", meta.OgImage)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("  hello\n\tworld   again ")
	if got != "hello world again" {
		t.Errorf("Expected collapsed whitespace, got %q", got)
	}
}

func TestResolveAssetURL(t *testing.T) {
	base := "https://example.com"
	cases := map[string]string{
		"https://cdn.com/a.png":  "https://cdn.com/a.png",
		"//cdn.com/a.png":        "https://cdn.com/a.png",
		"/a.png":                 "https://example.com/a.png",
		"a.png":                  "https://example.com/a.png",
		"assets/icons/a.png":     "https://example.com/assets/icons/a.png",
		"http://plain.com/b.ico": "http://plain.com/b.ico",
	}
	for ref, want := range cases {
		if got := resolveAssetURL(ref, "https", base); got != want {
			t.Errorf("resolveAssetURL(%q): expected %q, got %q", ref, want, got)
		}
	}
}
