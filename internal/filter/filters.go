package filter

import (
	"net/url"
	"strings"

	"github.com/Revanthsudeeep/waterconservation/internal/validator"
)

// AllCategories is the category selector that matches every item.
const AllCategories = "all"

const maxSearchLength = 200

// Searchable is implemented by list items that can be narrowed by the search box and category selector.
type Searchable interface {
	SearchTitle() string
	SearchBody() string
	SearchCategory() string
}

type Filter struct {
	Search   string
	Category string
}

func NewFilter(search, category string) Filter {
	return Filter{
		Search:   search,
		Category: category,
	}
}

// FromQuery reads the "search" and "category" parameters.
func FromQuery(query url.Values) Filter {
	category := query.Get("category")
	if category == "" {
		category = AllCategories
	}
	return NewFilter(query.Get("search"), category)
}

func ValidateFilter(f Filter, v *validator.Validator) {
	v.CheckMaxLength(f.Search, maxSearchLength, "search", "must not be more than 200 characters long")
	v.CheckMaxLength(f.Category, maxSearchLength, "category", "must not be more than 200 characters long")
}

// Match reports whether item passes both the category selector and the search text.
// Both comparisons are case-insensitive; the search text is a substring match on title or body.
func (f Filter) Match(item Searchable) bool {
	return f.matchesCategory(item) && f.matchesSearch(item)
}

func (f Filter) matchesCategory(item Searchable) bool {
	if f.Category == "" || f.Category == AllCategories {
		return true
	}
	return strings.EqualFold(item.SearchCategory(), f.Category)
}

func (f Filter) matchesSearch(item Searchable) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(item.SearchTitle()), needle) ||
		strings.Contains(strings.ToLower(item.SearchBody()), needle)
}

// Apply returns the matching items in their original order.
func Apply[T Searchable](items []T, f Filter) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			result = append(result, item)
		}
	}
	return result
}
