package feed

import (
	"strconv"

	"github.com/postline/postline/internal/models"
)

// Page is a bounded slice of an ordered post listing plus navigation
// metadata.
type Page struct {
	Items      []models.Post `json:"items"`
	Number     int           `json:"number"`
	PageSize   int           `json:"page_size"`
	TotalItems int64         `json:"total_items"`
	TotalPages int           `json:"total_pages"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
}

// ParsePageNumber interprets a raw page parameter. Absent or malformed
// values mean page 1; this is a clamping convention, not an error.
func ParsePageNumber(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Resolve clamps a requested page number against the collection size and
// returns the effective page number, the total page count and the row
// offset of the page window. An empty collection still has one (empty)
// page. Out-of-range requests clamp to the last page, never fail.
func Resolve(total int64, pageSize, requested int) (number, totalPages, offset int) {
	totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	number = requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	offset = (number - 1) * pageSize
	return number, totalPages, offset
}

// NewPage assembles page metadata around a fetched window
func NewPage(items []models.Post, total int64, pageSize, number, totalPages int) *Page {
	if items == nil {
		items = []models.Post{}
	}
	return &Page{
		Items:      items,
		Number:     number,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}
