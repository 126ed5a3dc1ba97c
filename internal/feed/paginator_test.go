package feed

import (
	"testing"

	"github.com/postline/postline/internal/models"
)

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "absent", raw: "", expected: 1},
		{name: "valid", raw: "3", expected: 3},
		{name: "zero clamps", raw: "0", expected: 1},
		{name: "negative clamps", raw: "-2", expected: 1},
		{name: "garbage clamps", raw: "abc", expected: 1},
		{name: "float clamps", raw: "1.5", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageNumber(tt.raw); got != tt.expected {
				t.Errorf("ParsePageNumber(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		pageSize   int
		requested  int
		number     int
		totalPages int
		offset     int
	}{
		{name: "first page", total: 25, pageSize: 10, requested: 1, number: 1, totalPages: 3, offset: 0},
		{name: "middle page", total: 25, pageSize: 10, requested: 2, number: 2, totalPages: 3, offset: 10},
		{name: "last partial page", total: 25, pageSize: 10, requested: 3, number: 3, totalPages: 3, offset: 20},
		{name: "beyond last clamps", total: 25, pageSize: 10, requested: 99, number: 3, totalPages: 3, offset: 20},
		{name: "page zero clamps", total: 25, pageSize: 10, requested: 0, number: 1, totalPages: 3, offset: 0},
		{name: "negative clamps", total: 25, pageSize: 10, requested: -5, number: 1, totalPages: 3, offset: 0},
		{name: "empty collection", total: 0, pageSize: 10, requested: 1, number: 1, totalPages: 1, offset: 0},
		{name: "empty collection beyond", total: 0, pageSize: 10, requested: 7, number: 1, totalPages: 1, offset: 0},
		{name: "exact multiple", total: 20, pageSize: 10, requested: 2, number: 2, totalPages: 2, offset: 10},
		{name: "legacy size two", total: 3, pageSize: 2, requested: 2, number: 2, totalPages: 2, offset: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, totalPages, offset := Resolve(tt.total, tt.pageSize, tt.requested)
			if number != tt.number || totalPages != tt.totalPages || offset != tt.offset {
				t.Errorf("Resolve(%d, %d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.total, tt.pageSize, tt.requested,
					number, totalPages, offset,
					tt.number, tt.totalPages, tt.offset)
			}
		})
	}
}

// Walking every page in order must cover the collection exactly once,
// with no gaps and no overlaps, for any size/total combination.
func TestResolveCoversCollectionExactly(t *testing.T) {
	for pageSize := 1; pageSize <= 5; pageSize++ {
		for total := int64(0); total <= 12; total++ {
			_, totalPages, _ := Resolve(total, pageSize, 1)

			covered := int64(0)
			prevEnd := 0
			for page := 1; page <= totalPages; page++ {
				number, _, offset := Resolve(total, pageSize, page)
				if number != page {
					t.Fatalf("size=%d total=%d: page %d resolved to %d", pageSize, total, page, number)
				}
				if offset != prevEnd {
					t.Fatalf("size=%d total=%d page=%d: offset %d, want %d (gap or overlap)",
						pageSize, total, page, offset, prevEnd)
				}
				window := int64(pageSize)
				if int64(offset)+window > total {
					window = total - int64(offset)
				}
				covered += window
				prevEnd = offset + pageSize
			}

			if covered != total {
				t.Fatalf("size=%d total=%d: pages cover %d items", pageSize, total, covered)
			}
		}
	}
}

func TestNewPage(t *testing.T) {
	posts := []models.Post{{ID: 3}, {ID: 2}}

	page := NewPage(posts, 5, 2, 2, 3)
	if page.Number != 2 || page.TotalPages != 3 || page.TotalItems != 5 {
		t.Errorf("unexpected metadata: %+v", page)
	}
	if !page.HasPrev {
		t.Error("page 2 of 3 should have a previous page")
	}
	if !page.HasNext {
		t.Error("page 2 of 3 should have a next page")
	}

	last := NewPage(posts, 5, 2, 3, 3)
	if last.HasNext {
		t.Error("last page should not have a next page")
	}

	first := NewPage(posts, 5, 2, 1, 3)
	if first.HasPrev {
		t.Error("first page should not have a previous page")
	}

	empty := NewPage(nil, 0, 10, 1, 1)
	if empty.Items == nil {
		t.Error("items should never be nil")
	}
	if empty.HasPrev || empty.HasNext {
		t.Error("single empty page should have no neighbors")
	}
}
