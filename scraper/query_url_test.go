package scraper

import (
	"strings"
	"testing"
)

const testBase = "https://www.funda.nl"

func mustRequest(t *testing.T, p Params) *SearchRequest {
	t.Helper()
	req, err := NewSearchRequest(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return req
}

func TestSearchURLBareBuySearch(t *testing.T) {
	req := mustRequest(t, validParams())

	got := SearchURL(testBase, req)
	want := "https://www.funda.nl/zoeken/koop?selected_area=%5B%22amsterdam%22%5D"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestSearchURLParameters(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Params)
		want   string
	}{
		{
			"RentSegment",
			func(p *Params) { p.WantTo = WantToRent },
			"/zoeken/huur?",
		},
		{
			"PriceRange",
			func(p *Params) { p.MinPrice = intp(500); p.MaxPrice = intp(2000) },
			"&price=%22500-2000%22",
		},
		{
			"OpenMaxPrice",
			func(p *Params) { p.MinPrice = intp(500) },
			"&price=%22500-%22",
		},
		{
			"OpenMinPrice",
			func(p *Params) { p.MaxPrice = intp(2000) },
			"&price=%22-2000%22",
		},
		{
			"FindSold",
			func(p *Params) { p.FindSold = true },
			`&availability=%5B"unavailable"%5D`,
		},
		{
			"PropertyTypes",
			func(p *Params) { p.PropertyType = "house,apartment" },
			"&object_type=%5B%22house%22,%22apartment%22%5D",
		},
		{
			"DaysSince",
			func(p *Params) { p.DaysSince = intp(5) },
			"&publication_date=5",
		},
		{
			"FloorArea",
			func(p *Params) { p.MinFloorArea = intp(50); p.MaxFloorArea = intp(120) },
			"&floor_area=%2250-120%22",
		},
		{
			"Sort",
			func(p *Params) { p.Sort = "date_down" },
			"&sort=%22date_down%22",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			req := mustRequest(t, p)

			got := SearchURL(testBase, req)
			if !strings.Contains(got, tc.want) {
				t.Errorf("URL %s\nmissing %s", got, tc.want)
			}
		})
	}
}

func TestSearchURLParameterOrder(t *testing.T) {
	p := validParams()
	p.FindSold = true
	p.MinPrice = intp(100000)
	p.MaxPrice = intp(400000)
	p.DaysSince = intp(10)
	p.MinFloorArea = intp(50)
	p.Sort = "price_up"
	p.PropertyType = "house"
	req := mustRequest(t, p)

	got := SearchURL(testBase, req)
	want := "https://www.funda.nl/zoeken/koop" +
		"?selected_area=%5B%22amsterdam%22%5D" +
		"&object_type=%5B%22house%22%5D" +
		`&availability=%5B"unavailable"%5D` +
		"&price=%22100000-400000%22" +
		"&publication_date=10" +
		"&floor_area=%2250-%22" +
		"&sort=%22price_up%22"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestSearchURLDeterministic(t *testing.T) {
	p := validParams()
	p.MinPrice = intp(500)
	p.MaxPrice = intp(2000)
	p.Sort = "date_down"
	req := mustRequest(t, p)

	first := SearchURL(testBase, req)
	for i := 0; i < 10; i++ {
		if got := SearchURL(testBase, req); got != first {
			t.Fatalf("URL changed between calls: %s vs %s", first, got)
		}
	}
}
