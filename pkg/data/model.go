package data

// NamedResource is a name plus the API URL it points at.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Character struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Status   string        `json:"status"` // "Alive", "Dead", "unknown"
	Species  string        `json:"species"`
	Type     string        `json:"type"`
	Gender   string        `json:"gender"`
	Origin   NamedResource `json:"origin"`
	Location NamedResource `json:"location"`
	Image    string        `json:"image"`
	URL      string        `json:"url"`
}

type Episode struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Code       string   `json:"episode"` // e.g. "S01E01"
	AirDate    string   `json:"air_date"`
	Characters []string `json:"characters"`
	URL        string   `json:"url"`
}

// Season returns the season part of the episode code ("S01" for "S01E01").
func (e Episode) Season() string {
	if len(e.Code) >= 3 && (e.Code[0] == 'S' || e.Code[0] == 's') {
		for i := 1; i < len(e.Code); i++ {
			if e.Code[i] == 'E' || e.Code[i] == 'e' {
				return e.Code[:i]
			}
		}
	}
	return ""
}
