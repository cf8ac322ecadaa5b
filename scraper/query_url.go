package scraper

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchURL builds the search-results URL for req. Funda expects its array
// parameters percent-encoded exactly the way the website itself emits them
// (%5B %22 ... %22 %5D, and a bare-quote variant for availability), so the
// URL is assembled textually instead of through url.Values.
func SearchURL(base string, req *SearchRequest) string {
	segment := "huur"
	if req.ToBuy() {
		segment = "koop"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s/zoeken/%s?selected_area=%%5B%%22%s%%22%%5D", base, segment, req.Area())

	if types := req.PropertyType(); types != "" {
		quoted := strings.Split(types, ",")
		for i, t := range quoted {
			quoted[i] = "%22" + t + "%22"
		}
		fmt.Fprintf(&b, "&object_type=%%5B%s%%5D", strings.Join(quoted, ","))
	}

	if req.FindSold() {
		b.WriteString(`&availability=%5B"unavailable"%5D`)
	}

	if req.MinPrice() != nil || req.MaxPrice() != nil {
		fmt.Fprintf(&b, "&price=%%22%s-%s%%22", bound(req.MinPrice()), bound(req.MaxPrice()))
	}

	if req.DaysSince() != nil {
		fmt.Fprintf(&b, "&publication_date=%d", *req.DaysSince())
	}

	if req.MinFloorArea() != nil || req.MaxFloorArea() != nil {
		fmt.Fprintf(&b, "&floor_area=%%22%s-%s%%22", bound(req.MinFloorArea()), bound(req.MaxFloorArea()))
	}

	if req.Sort() != "" {
		fmt.Fprintf(&b, "&sort=%%22%s%%22", req.Sort())
	}

	return b.String()
}

// bound renders an optional range bound, empty when unset (open-ended).
func bound(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
