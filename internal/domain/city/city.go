package city

// City is a reference record used for location suggestions.
type City struct {
	Name   string
	State  string // two-letter code
	Region string
}

// DisplayName returns "{name}, {state}".
func (c City) DisplayName() string {
	return c.Name + ", " + c.State
}

// Suggestion is a matched city with its derived display name.
type Suggestion struct {
	City
	DisplayName string
}

// NewSuggestion derives a Suggestion from a City.
func NewSuggestion(c City) Suggestion {
	return Suggestion{City: c, DisplayName: c.DisplayName()}
}
