package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
)

// filterDishes keeps dishes matching keep, preserving order. Never returns nil.
func filterDishes(dishes []models.Dish, keep func(models.Dish) bool) []models.Dish {
	out := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// sortDishes orders dishes in place. Ties keep their relative order, also for desc.
// SortByNone leaves the slice untouched.
func sortDishes(dishes []models.Dish, field models.SortField, order models.SortOrder) {
	compare := comparator(field)
	if compare == nil {
		return
	}
	if order == models.SortDesc {
		asc := compare
		compare = func(a, b models.Dish) int { return asc(b, a) }
	}
	slices.SortStableFunc(dishes, compare)
}

// comparator returns the ascending comparison for field, or nil when the field
// does not order dishes.
func comparator(field models.SortField) func(a, b models.Dish) int {
	if field.Numeric() {
		minutes := func(d models.Dish) int { return d.CookTime }
		if field == models.SortByPrepTime {
			minutes = func(d models.Dish) int { return d.PrepTime }
		}
		return func(a, b models.Dish) int { return cmp.Compare(minutes(a), minutes(b)) }
	}

	switch field {
	case models.SortByID:
		return byText(func(d models.Dish) string { return d.ID })
	case models.SortByName:
		return byText(func(d models.Dish) string { return d.Name })
	case models.SortByDiet:
		return byText(func(d models.Dish) string { return d.Diet })
	case models.SortByFlavorProfile:
		return byText(func(d models.Dish) string { return d.FlavorProfile })
	case models.SortByCourse:
		return byText(func(d models.Dish) string { return d.Course })
	case models.SortByState:
		return byText(func(d models.Dish) string { return d.State })
	case models.SortByRegion:
		return byText(func(d models.Dish) string { return d.Region })
	default:
		return nil
	}
}

func byText(field func(models.Dish) string) func(a, b models.Dish) int {
	return func(a, b models.Dish) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

// paginate returns the page window. Page and limit must already be positive.
// A window past the end yields an empty, non-nil slice.
func paginate(dishes []models.Dish, page, limit int) []models.Dish {
	// Count whole pages before multiplying; (page-1)*limit wraps for huge values.
	n := len(dishes)
	if n == 0 || page-1 >= (n-1)/limit+1 {
		return []models.Dish{}
	}
	start := (page - 1) * limit
	end := n
	if limit < n-start {
		end = start + limit
	}
	return dishes[start:end]
}

// normalizeIngredients lower-cases and trims ingredients, dropping blanks.
func normalizeIngredients(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, i := range ingredients {
		if n := strings.ToLower(strings.TrimSpace(i)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// splitIngredients splits a dataset ingredient list on commas.
func splitIngredients(list string) []string {
	return normalizeIngredients(strings.Split(list, ","))
}

// containsFold reports whether s contains the lower-case term, ignoring case in s.
func containsFold(s, term string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), term)
}
