package models

import "strings"

// Pagination defaults applied when page or limit is missing or not positive.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SortField enumerates the dish fields a listing can be ordered by.
type SortField string

const (
	SortByNone          SortField = ""
	SortByID            SortField = "id"
	SortByName          SortField = "name"
	SortByDiet          SortField = "diet"
	SortByPrepTime      SortField = "prep_time"
	SortByCookTime      SortField = "cook_time"
	SortByFlavorProfile SortField = "flavor_profile"
	SortByCourse        SortField = "course"
	SortByState         SortField = "state"
	SortByRegion        SortField = "region"
)

var sortFields = map[SortField]bool{
	SortByID:            true,
	SortByName:          true,
	SortByDiet:          true,
	SortByPrepTime:      true,
	SortByCookTime:      true,
	SortByFlavorProfile: true,
	SortByCourse:        true,
	SortByState:         true,
	SortByRegion:        true,
}

// ParseSortField maps a query parameter onto a known SortField.
// The second return value is false for unknown names; callers then keep store order.
func ParseSortField(s string) (SortField, bool) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == SortByNone {
		return SortByNone, true
	}
	if !sortFields[f] {
		return SortByNone, false
	}
	return f, true
}

// Numeric reports whether the field holds minutes rather than text.
func (f SortField) Numeric() bool {
	return f == SortByPrepTime || f == SortByCookTime
}

// SortOrder is asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortDesc only for "desc" (any case); everything else is ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// QueryRequest carries the listing parameters of GET /api/dishes.
type QueryRequest struct {
	Page      int
	Limit     int
	SortBy    SortField
	SortOrder SortOrder
	Diet      string
	Course    string
}

// Normalize replaces non-positive page and limit values with the defaults.
func (q QueryRequest) Normalize() QueryRequest {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.SortOrder != SortDesc {
		q.SortOrder = SortAsc
	}
	return q
}

// QueryResult is one page of dishes plus the filtered total.
type QueryResult struct {
	Data  []Dish `json:"data"`
	Total int    `json:"total"`
}

// SearchCriteria holds the optional predicates of an advanced search.
// Empty fields impose no constraint.
type SearchCriteria struct {
	Name          string `json:"name,omitempty"`
	State         string `json:"state,omitempty"`
	Region        string `json:"region,omitempty"`
	Diet          string `json:"diet,omitempty"`
	Course        string `json:"course,omitempty"`
	FlavorProfile string `json:"flavor_profile,omitempty"`
}

// IngredientsRequest is the body of the ingredient matching endpoints.
type IngredientsRequest struct {
	Ingredients []string `json:"ingredients"`
}
