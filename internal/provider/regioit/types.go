package regioit

// place is an entry of GET /orte.
type place struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// street is an entry of GET /orte/{ortId}/strassen?jahr=YYYY. Many other
// fields exist and are ignored.
type street struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// streetDetail is GET /strassen/{strassenId}.
type streetDetail struct {
	HouseNumbers []houseNumber `json:"hausNrList"`
}

type houseNumber struct {
	ID     int64  `json:"id"`
	Number string `json:"nr"`
}

// pickup is an entry of GET /hausnummern/{id}/termine. jahr and info are ignored.
type pickup struct {
	Date     string    `json:"datum"` // YYYY-MM-DD
	District *district `json:"bezirk"`
}

type district struct {
	FractionID int64 `json:"fraktionId"`
}

// fraction is an entry of GET /hausnummern/{id}/fraktionen.
type fraction struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
