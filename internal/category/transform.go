package category

import (
	"strconv"

	"github.com/vietddude/appstore/internal/core/domain"
)

// Transform keeps visible records and maps them to categories. IDs are
// positions in the filtered sequence, not in the raw input.
func Transform(records []domain.RawCategoryRecord, imageURL func(string) string) []domain.Category {
	categories := make([]domain.Category, 0, len(records))
	for _, r := range records {
		if !r.Show {
			continue
		}

		icons := make([]string, 0, len(r.Icon))
		for _, file := range r.Icon {
			icons = append(icons, imageURL(file))
		}

		categories = append(categories, domain.Category{
			ID:    strconv.Itoa(len(categories)),
			Title: r.Name,
			Icon:  icons,
			Apps:  r.Apps,
		})
	}
	return categories
}

// Result is the outcome of one fetch, including its retries.
type Result struct {
	Categories []domain.Category
	Err        error
}

// resolve applies the fallback policy: failed or empty results become the
// default list. The second return value reports whether it did so.
func resolve(res Result) ([]domain.Category, bool) {
	if res.Err != nil || len(res.Categories) == 0 {
		return domain.DefaultCategories(), true
	}
	return res.Categories, false
}
