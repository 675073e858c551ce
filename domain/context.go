package domain

// ContextProfile carries the situational attributes extracted from the
// query text plus anything the caller supplied explicitly. Explicit values
// win over extracted ones.
type ContextProfile struct {
	Occasion  string   `json:"occasion,omitempty"`
	Season    string   `json:"season,omitempty"`
	Mood      string   `json:"mood,omitempty"`
	TimeOfDay string   `json:"time_of_day,omitempty"`
	Weather   string   `json:"weather,omitempty"`
	Location  string   `json:"location,omitempty"`
	Styles    []string `json:"styles,omitempty"`
}

func (c ContextProfile) IsEmpty() bool {
	return c.Occasion == "" && c.Season == "" && c.Mood == "" &&
		c.TimeOfDay == "" && c.Weather == "" && c.Location == "" && len(c.Styles) == 0
}
