package cologne

// streetsResponse is the body of GET /streets.
type streetsResponse struct {
	Data []streetEntry `json:"data"`
}

// streetEntry is one street/building match.
type streetEntry struct {
	StreetName             string `json:"street_name"`
	BuildingNumber         string `json:"building_number"`
	BuildingNumberAddition string `json:"building_number_addition"`
	StreetCode             string `json:"street_code"`

	// Spelling as the user would write it; preferred for labels when set.
	UserStreetName     string `json:"user_street_name"`
	UserBuildingNumber string `json:"user_building_number"`
}

// calendarResponse is the body of GET /calendar. districtChange and
// blacklisted are ignored.
type calendarResponse struct {
	Data []calendarEntry `json:"data"`
}

type calendarEntry struct {
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Type  string `json:"type"` // grey, blue, brown, wertstoff, …
}
