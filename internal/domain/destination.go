package domain

// Category classifies a travel destination. The set is fixed at compile time
// and mirrors the catalog content.
type Category string

const (
	CategoryBeach     Category = "beach"
	CategoryMountain  Category = "mountain"
	CategoryCity      Category = "city"
	CategoryAdventure Category = "adventure"
	CategoryCultural  Category = "cultural"
)

// Categories lists every valid destination category in display order.
func Categories() []Category {
	return []Category{
		CategoryBeach,
		CategoryMountain,
		CategoryCity,
		CategoryAdventure,
		CategoryCultural,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBeach, CategoryMountain, CategoryCity, CategoryAdventure, CategoryCultural:
		return true
	}
	return false
}

type Destination struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	Price           int      `json:"price"`
	Duration        string   `json:"duration"`
	Category        Category `json:"category"`
	Highlights      []string `json:"highlights"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
	Activities      []string `json:"activities"`
}
