package models

// Venue represents a place that can host shows.
type Venue struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Genres             []string `json:"genres"`
	WebsiteLink        string   `json:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// VenueFilter narrows venue listings. Zero values match everything.
type VenueFilter struct {
	NameContains string // case-insensitive substring
	City         string // exact match
	State        string // exact match
}
