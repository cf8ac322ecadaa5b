package extract

// Listing is one scraped property. Fields hold the text as scraped; clean
// mode reduces the numeric ones to bare numbers.
type Listing struct {
	URL         string `json:"url"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Price       string `json:"price"`
	LivingArea  string `json:"living_area"`
	PlotArea    string `json:"plot_area"`
	Rooms       string `json:"rooms"`
	YearBuilt   string `json:"year_built"`
	EnergyLabel string `json:"energy_label"`
	ListedSince string `json:"listed_since"`
	Description string `json:"description"`
}

func csvHeader() []string {
	return []string{
		"url", "address", "postal_code", "city", "price", "living_area",
		"plot_area", "rooms", "year_built", "energy_label", "listed_since",
		"description",
	}
}

func (l Listing) csvRow() []string {
	return []string{
		l.URL, l.Address, l.PostalCode, l.City, l.Price, l.LivingArea,
		l.PlotArea, l.Rooms, l.YearBuilt, l.EnergyLabel, l.ListedSince,
		l.Description,
	}
}
