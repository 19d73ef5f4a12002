package services

import (
	"fmt"
	"testing"
	"time"

	"linkdeck/internal/db"
	"linkdeck/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupQueryTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Bookmark{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb
}

func seedBookmark(t *testing.T, i int, mutate func(*models.Bookmark)) models.Bookmark {
	t.Helper()
	b := models.Bookmark{
		Bid:        fmt.Sprintf("bm%06d", i),
		URL:        fmt.Sprintf("https://example.com/%d", i),
		Title:      fmt.Sprintf("Bookmark %02d", i),
		OrderIndex: i,
	}
	if mutate != nil {
		mutate(&b)
	}
	if err := db.DB.Create(&b).Error; err != nil {
		t.Fatalf("seed bookmark %d: %v", i, err)
	}
	return b
}

func TestPaginationArithmetic(t *testing.T) {
	setupQueryTestDB(t)
	for i := 1; i <= 15; i++ {
		seedBookmark(t, i, nil)
	}

	page, err := ListBookmarks(BookmarkListParams{Page: 2, PageSize: 5})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if page.Pagination.Total != 15 {
		t.Errorf("Expected total 15, got %d", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", page.Pagination.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Errorf("Expected 5 items on page 2, got %d", len(page.Items))
	}
	if !page.Pagination.HasMore {
		t.Error("Expected hasMore=true on page 2 of 3")
	}

	last, err := ListBookmarks(BookmarkListParams{Page: 3, PageSize: 5})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if last.Pagination.HasMore {
		t.Error("Expected hasMore=false on last page")
	}
}

func TestEmptyPageBeyondRange(t *testing.T) {
	setupQueryTestDB(t)
	for i := 1; i <= 15; i++ {
		seedBookmark(t, i, nil)
	}

	page, err := ListBookmarks(BookmarkListParams{Page: 100, PageSize: 5})
	if err != nil {
		t.Fatalf("ListBookmarks should not error on out-of-range page: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected empty items, got %d", len(page.Items))
	}
	if page.Pagination.Total != 15 || page.Pagination.TotalPages != 3 {
		t.Errorf("Expected total=15 totalPages=3, got %d/%d",
			page.Pagination.Total, page.Pagination.TotalPages)
	}
	if page.Pagination.HasMore {
		t.Error("Expected hasMore=false beyond last page")
	}
}

func TestPinnedAlwaysFirst(t *testing.T) {
	setupQueryTestDB(t)
	seedBookmark(t, 1, func(b *models.Bookmark) { b.Title = "Alpha" })
	seedBookmark(t, 2, func(b *models.Bookmark) { b.Title = "Beta" })
	seedBookmark(t, 3, func(b *models.Bookmark) {
		b.Title = "Zulu"
		b.IsPinned = true
	})

	// 按标题升序,置顶的 Zulu 仍然要排第一
	page, err := ListBookmarks(BookmarkListParams{SortBy: "title", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(page.Items))
	}
	if page.Items[0].Title != "Zulu" || !page.Items[0].IsPinned {
		t.Errorf("Expected pinned bookmark first, got %q", page.Items[0].Title)
	}
	if page.Items[1].Title != "Alpha" || page.Items[2].Title != "Beta" {
		t.Errorf("Expected unpinned partition sorted by title, got %q/%q",
			page.Items[1].Title, page.Items[2].Title)
	}
}

func TestUncategorizedSentinel(t *testing.T) {
	setupQueryTestDB(t)
	seedBookmark(t, 1, func(b *models.Bookmark) { b.Category = "" })
	seedBookmark(t, 2, func(b *models.Bookmark) { b.Category = "abc12345" })
	// 分类 ID 恰好是字面量 uncategorized 时,哨兵也不能匹配它
	seedBookmark(t, 3, func(b *models.Bookmark) { b.Category = "uncategorized" })

	page, err := ListBookmarks(BookmarkListParams{Category: CategoryUnfiled})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("Expected exactly 1 uncategorized bookmark, got %d", len(page.Items))
	}
	if page.Items[0].Bid != "bm000001" {
		t.Errorf("Expected the empty-category bookmark, got %q", page.Items[0].Bid)
	}

	// 真实分类照常精确匹配
	real, err := ListBookmarks(BookmarkListParams{Category: "abc12345"})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(real.Items) != 1 || real.Items[0].Bid != "bm000002" {
		t.Errorf("Expected exact category match, got %d items", len(real.Items))
	}
}

func TestCombinedFiltersAreConjunctive(t *testing.T) {
	setupQueryTestDB(t)
	seedBookmark(t, 1, func(b *models.Bookmark) {
		b.Title = "GitHub"
		b.Category = "dev00001"
		b.IsPinned = true
	})
	seedBookmark(t, 2, func(b *models.Bookmark) {
		b.Title = "GitHub Docs"
		b.Category = "dev00001"
	})
	seedBookmark(t, 3, func(b *models.Bookmark) {
		b.Title = "GitLab"
		b.Category = "work0001"
		b.IsPinned = true
	})

	pinned := true
	page, err := ListBookmarks(BookmarkListParams{
		Search:   "github",
		Category: "dev00001",
		IsPinned: &pinned,
	})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "GitHub" {
		t.Errorf("Expected only the pinned dev GitHub bookmark, got %d items", len(page.Items))
	}
}

func TestSearchCaseInsensitiveAcrossFields(t *testing.T) {
	setupQueryTestDB(t)
	seedBookmark(t, 1, func(b *models.Bookmark) { b.Title = "Home Server" })
	seedBookmark(t, 2, func(b *models.Bookmark) {
		b.Title = "Other"
		b.URL = "https://HOMELAB.example.com"
	})
	seedBookmark(t, 3, func(b *models.Bookmark) {
		b.Title = "Other Too"
		b.Description = "notes about the homelab"
	})
	seedBookmark(t, 4, func(b *models.Bookmark) { b.Title = "Unrelated" })

	page, err := ListBookmarks(BookmarkListParams{Search: "HoMe"})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(page.Items) != 3 {
		t.Errorf("Expected 3 matches across title/url/description, got %d", len(page.Items))
	}
}

func TestOrderIndexTieBreakByCreatedAt(t *testing.T) {
	setupQueryTestDB(t)
	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	seedBookmark(t, 1, func(b *models.Bookmark) {
		b.OrderIndex = 7
		b.CreatedAt = older
	})
	seedBookmark(t, 2, func(b *models.Bookmark) {
		b.OrderIndex = 7
		b.CreatedAt = newer
	})

	page, err := ListBookmarks(BookmarkListParams{SortBy: "orderIndex", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if page.Items[0].Bid != "bm000002" {
		t.Errorf("Expected newer bookmark first on orderIndex tie, got %q", page.Items[0].Bid)
	}
}

func TestNormalizeOutOfRangeParams(t *testing.T) {
	setupQueryTestDB(t)
	seedBookmark(t, 1, nil)

	page, err := ListBookmarks(BookmarkListParams{
		Page:      -3,
		PageSize:  -10,
		SortBy:    "; DROP TABLE bookmarks",
		SortOrder: "sideways",
	})
	if err != nil {
		t.Fatalf("ListBookmarks should coerce bad params, got error: %v", err)
	}
	if page.Pagination.Page != 1 {
		t.Errorf("Expected page clamped to 1, got %d", page.Pagination.Page)
	}
	if page.Pagination.PageSize != defaultPageSize {
		t.Errorf("Expected default pageSize %d, got %d", defaultPageSize, page.Pagination.PageSize)
	}

	big, err := ListBookmarks(BookmarkListParams{PageSize: 5000})
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if big.Pagination.PageSize != maxPageSize {
		t.Errorf("Expected pageSize capped at %d, got %d", maxPageSize, big.Pagination.PageSize)
	}
}
