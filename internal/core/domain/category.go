package domain

import "fmt"

// Category is a named grouping of apps shown in the store navigation.
type Category struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Icon  []string `json:"icon"`
	Apps  []string `json:"apps,omitempty"`
}

// RawCategoryRecord is the wire shape served by the operation server.
type RawCategoryRecord struct {
	Name string   `json:"name"`
	Icon []string `json:"icon"`
	Show bool     `json:"show"`
	Apps []string `json:"apps"`
}

// DefaultCategoryIDs lists the built-in categories in display order.
var DefaultCategoryIDs = []string{
	"internet",
	"office",
	"development",
	"reading",
	"graphics",
	"game",
	"music",
	"system",
	"video",
	"chat",
	"others",
}

// DefaultCategories returns a fresh copy of the built-in category list.
// Icons point at local static assets, not the remote server.
func DefaultCategories() []Category {
	categories := make([]Category, 0, len(DefaultCategoryIDs))
	for _, id := range DefaultCategoryIDs {
		categories = append(categories, Category{
			ID:    id,
			Title: id,
			Icon: []string{
				fmt.Sprintf("/assets/category/%s.svg", id),
				fmt.Sprintf("/assets/category/%s_active.svg", id),
			},
		})
	}
	return categories
}
