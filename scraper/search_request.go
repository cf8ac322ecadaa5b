package scraper

import (
	"strings"
)

const (
	WantToBuy  = "buy"
	WantToRent = "rent"
)

// SortKeys are the sort orders funda's search endpoint accepts.
var SortKeys = []string{
	"relevancy",
	"date_down",
	"date_up",
	"price_up",
	"price_down",
	"floor_area_down",
	"plot_area_down",
	"city_up",
	"postal_code_up",
}

// AllowedDaysSince are the publication-date windows funda's search endpoint
// accepts.
var AllowedDaysSince = []int{1, 3, 5, 10, 30}

// Params are the named search parameters. Optional numeric filters are nil
// when unset so that a zero bound stays expressible.
type Params struct {
	Area          string
	WantTo        string
	FindSold      bool
	PageStart     int
	NumberOfPages int
	MinPrice      *int
	MaxPrice      *int
	MinFloorArea  *int
	MaxFloorArea  *int
	DaysSince     *int
	Sort          string
	PropertyType  string
}

// SearchRequest holds one validated set of search parameters. It is
// immutable during a run; Reset replaces fields between runs.
type SearchRequest struct {
	params Params
}

// NewSearchRequest validates p and returns the request, or a
// *ValidationError describing the first violation.
func NewSearchRequest(p Params) (*SearchRequest, error) {
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &SearchRequest{params: p}, nil
}

func validate(p *Params) error {
	if strings.TrimSpace(p.Area) == "" {
		return &ValidationError{Field: "area", Reason: "must not be empty"}
	}
	if p.WantTo != WantToBuy && p.WantTo != WantToRent {
		return &ValidationError{Field: "want_to", Reason: "must be 'buy' or 'rent'"}
	}
	if p.PageStart < 1 {
		return &ValidationError{Field: "page_start", Reason: "must be positive"}
	}
	if p.NumberOfPages < 1 {
		return &ValidationError{Field: "number_of_pages", Reason: "must be positive"}
	}
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return &ValidationError{Field: "min_price", Reason: "must not be negative"}
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return &ValidationError{Field: "max_price", Reason: "must not be negative"}
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return &ValidationError{Field: "min_price", Reason: "must not exceed max_price"}
	}
	if p.MinFloorArea != nil && *p.MinFloorArea < 0 {
		return &ValidationError{Field: "min_floor_area", Reason: "must not be negative"}
	}
	if p.MaxFloorArea != nil && *p.MaxFloorArea < 0 {
		return &ValidationError{Field: "max_floor_area", Reason: "must not be negative"}
	}
	if p.DaysSince != nil && !containsInt(AllowedDaysSince, *p.DaysSince) {
		return &ValidationError{Field: "days_since", Reason: "must be one of 1, 3, 5, 10, 30"}
	}
	if p.Sort != "" && !containsString(SortKeys, p.Sort) {
		return &ValidationError{Field: "sort", Reason: "unknown sort key"}
	}
	return nil
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Option mutates one field during Reset.
type Option func(*Params)

func WithArea(area string) Option { return func(p *Params) { p.Area = area } }

func WithWantTo(wantTo string) Option { return func(p *Params) { p.WantTo = wantTo } }

func WithFindSold(findSold bool) Option { return func(p *Params) { p.FindSold = findSold } }

func WithPageStart(start int) Option { return func(p *Params) { p.PageStart = start } }

func WithNumberOfPages(n int) Option { return func(p *Params) { p.NumberOfPages = n } }

func WithMinPrice(v int) Option { return func(p *Params) { p.MinPrice = &v } }

func WithMaxPrice(v int) Option { return func(p *Params) { p.MaxPrice = &v } }

func WithMinFloorArea(v int) Option { return func(p *Params) { p.MinFloorArea = &v } }

func WithMaxFloorArea(v int) Option { return func(p *Params) { p.MaxFloorArea = &v } }

func WithDaysSince(v int) Option { return func(p *Params) { p.DaysSince = &v } }

func WithSort(key string) Option { return func(p *Params) { p.Sort = key } }

func WithPropertyType(types string) Option { return func(p *Params) { p.PropertyType = types } }

// Reset applies the given overrides, leaving every other field unchanged.
// The overrides are re-validated as a whole; on failure the request keeps
// its previous state.
func (r *SearchRequest) Reset(opts ...Option) error {
	next := r.params
	for _, opt := range opts {
		opt(&next)
	}
	if err := validate(&next); err != nil {
		return err
	}
	r.params = next
	return nil
}

func (r *SearchRequest) Area() string { return r.params.Area }

func (r *SearchRequest) WantTo() string { return r.params.WantTo }

func (r *SearchRequest) ToBuy() bool { return r.params.WantTo == WantToBuy }

func (r *SearchRequest) FindSold() bool { return r.params.FindSold }

func (r *SearchRequest) PageStart() int { return r.params.PageStart }

func (r *SearchRequest) NumberOfPages() int { return r.params.NumberOfPages }

func (r *SearchRequest) MinPrice() *int { return r.params.MinPrice }

func (r *SearchRequest) MaxPrice() *int { return r.params.MaxPrice }

func (r *SearchRequest) MinFloorArea() *int { return r.params.MinFloorArea }

func (r *SearchRequest) MaxFloorArea() *int { return r.params.MaxFloorArea }

func (r *SearchRequest) DaysSince() *int { return r.params.DaysSince }

func (r *SearchRequest) Sort() string { return r.params.Sort }

func (r *SearchRequest) PropertyType() string { return r.params.PropertyType }
