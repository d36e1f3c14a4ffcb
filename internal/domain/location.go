package domain

// Location es una ubicacion resuelta. Siempre tiene valores concretos.
type Location struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	StateCode string  `json:"stateCode"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone,omitempty"`
	Source    string  `json:"source"`
}

// SavedLocation es lo que el cliente guardaba en local storage: el ultimo ZIP
// y/o la ultima ubicacion resuelta.
type SavedLocation struct {
	ZIP      string    `json:"zip,omitempty"`
	Location *Location `json:"location,omitempty"`
}

func (s SavedLocation) IsEmpty() bool {
	return s.ZIP == "" && s.Location == nil
}
