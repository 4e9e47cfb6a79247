// Package catalog holds the static destination catalog. The records are
// compiled into the binary and never mutated at runtime; callers always
// receive copies.
package catalog

import "github.com/vistago/vistago-api/internal/domain"

// All returns the catalog in its canonical order.
func All() []domain.Destination {
	out := make([]domain.Destination, len(destinations))
	copy(out, destinations)
	return out
}

// Get returns the destination with the given id, or false when absent.
func Get(id string) (domain.Destination, bool) {
	for _, d := range destinations {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Destination{}, false
}

// Len reports the number of catalog entries.
func Len() int {
	return len(destinations)
}

var destinations = []domain.Destination{
	{
		ID:              "1",
		Name:            "Bali",
		Country:         "Indonesia",
		Description:     "A tropical paradise with stunning beaches, ancient temples, and vibrant culture. Experience the perfect blend of relaxation and adventure.",
		Image:           "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800",
		Rating:          4.8,
		Price:           1200,
		Duration:        "7 days",
		Category:        domain.CategoryBeach,
		Highlights:      []string{"Beautiful beaches", "Ancient temples", "Rice terraces", "Surfing"},
		BestTimeToVisit: "April to October",
		Activities:      []string{"Beach hopping", "Temple visits", "Yoga retreats", "Water sports", "Cultural shows"},
	},
	{
		ID:              "2",
		Name:            "Swiss Alps",
		Country:         "Switzerland",
		Description:     "Majestic mountains, pristine lakes, and charming villages. Perfect for adventure seekers and nature lovers.",
		Image:           "https://images.unsplash.com/photo-1531366936337-7c912a4589a7?w=800",
		Rating:          4.9,
		Price:           2500,
		Duration:        "10 days",
		Category:        domain.CategoryMountain,
		Highlights:      []string{"Snow-capped peaks", "Scenic train rides", "Skiing", "Hiking trails"},
		BestTimeToVisit: "December to March (skiing), June to September (hiking)",
		Activities:      []string{"Skiing", "Snowboarding", "Hiking", "Mountain biking", "Cable car rides"},
	},
	{
		ID:              "3",
		Name:            "Tokyo",
		Country:         "Japan",
		Description:     "A fascinating blend of traditional and modern culture. From ancient temples to futuristic technology.",
		Image:           "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800",
		Rating:          4.7,
		Price:           1800,
		Duration:        "8 days",
		Category:        domain.CategoryCity,
		Highlights:      []string{"Modern architecture", "Traditional temples", "Amazing food", "Cherry blossoms"},
		BestTimeToVisit: "March to May, September to November",
		Activities:      []string{"Temple tours", "Shopping", "Food tours", "Museum visits", "Night life"},
	},
	{
		ID:              "4",
		Name:            "Santorini",
		Country:         "Greece",
		Description:     "Iconic white-washed buildings with blue domes overlooking the Aegean Sea. Romance and beauty combined.",
		Image:           "https://images.unsplash.com/photo-1613395877344-13d4a8e0d49e?w=800",
		Rating:          4.9,
		Price:           1600,
		Duration:        "6 days",
		Category:        domain.CategoryBeach,
		Highlights:      []string{"Sunset views", "White architecture", "Wine tasting", "Ancient ruins"},
		BestTimeToVisit: "April to November",
		Activities:      []string{"Beach relaxation", "Wine tours", "Boat trips", "Photography", "Fine dining"},
	},
	{
		ID:              "5",
		Name:            "Machu Picchu",
		Country:         "Peru",
		Description:     "Ancient Incan citadel set high in the Andes Mountains. A UNESCO World Heritage site and one of the New Seven Wonders.",
		Image:           "https://images.unsplash.com/photo-1587595431973-160d0d94add1?w=800",
		Rating:          4.8,
		Price:           1400,
		Duration:        "9 days",
		Category:        domain.CategoryAdventure,
		Highlights:      []string{"Ancient ruins", "Mountain scenery", "Inca Trail", "Sacred Valley"},
		BestTimeToVisit: "May to September",
		Activities:      []string{"Hiking", "Historical tours", "Photography", "Cultural experiences", "Train rides"},
	},
	{
		ID:              "6",
		Name:            "Paris",
		Country:         "France",
		Description:     "The City of Light and Love. World-class museums, iconic landmarks, and exquisite cuisine.",
		Image:           "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800",
		Rating:          4.7,
		Price:           2000,
		Duration:        "7 days",
		Category:        domain.CategoryCity,
		Highlights:      []string{"Eiffel Tower", "Louvre Museum", "French cuisine", "Seine River"},
		BestTimeToVisit: "April to June, September to October",
		Activities:      []string{"Museum tours", "Fine dining", "Shopping", "River cruises", "Architecture walks"},
	},
	{
		ID:              "7",
		Name:            "Maldives",
		Country:         "Maldives",
		Description:     "Tropical paradise with crystal-clear waters, white sandy beaches, and luxury overwater bungalows.",
		Image:           "https://images.unsplash.com/photo-1514282401047-d79a71a590e8?w=800",
		Rating:          4.9,
		Price:           3000,
		Duration:        "7 days",
		Category:        domain.CategoryBeach,
		Highlights:      []string{"Overwater villas", "Coral reefs", "Water sports", "Luxury resorts"},
		BestTimeToVisit: "November to April",
		Activities:      []string{"Snorkeling", "Diving", "Spa treatments", "Water sports", "Island hopping"},
	},
	{
		ID:              "8",
		Name:            "Iceland",
		Country:         "Iceland",
		Description:     "Land of fire and ice. Experience the Northern Lights, geothermal hot springs, and dramatic landscapes.",
		Image:           "https://images.unsplash.com/photo-1504829857797-ddff29c27927?w=800",
		Rating:          4.8,
		Price:           2200,
		Duration:        "8 days",
		Category:        domain.CategoryAdventure,
		Highlights:      []string{"Northern Lights", "Blue Lagoon", "Waterfalls", "Glaciers"},
		BestTimeToVisit: "June to August (summer), September to March (Northern Lights)",
		Activities:      []string{"Northern Lights tours", "Hot spring bathing", "Glacier hiking", "Whale watching", "Waterfall visits"},
	},
	{
		ID:              "9",
		Name:            "Rome",
		Country:         "Italy",
		Description:     "The Eternal City. Ancient history meets modern life with incredible architecture, art, and cuisine.",
		Image:           "https://images.unsplash.com/photo-1552832230-c0197dd311b5?w=800",
		Rating:          4.7,
		Price:           1500,
		Duration:        "6 days",
		Category:        domain.CategoryCultural,
		Highlights:      []string{"Colosseum", "Vatican City", "Roman Forum", "Italian cuisine"},
		BestTimeToVisit: "April to June, September to October",
		Activities:      []string{"Historical tours", "Food tours", "Museum visits", "Shopping", "Architecture walks"},
	},
	{
		ID:              "10",
		Name:            "Dubai",
		Country:         "UAE",
		Description:     "A city of superlatives with the world's tallest building, luxury shopping, and desert adventures.",
		Image:           "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=800",
		Rating:          4.6,
		Price:           1900,
		Duration:        "7 days",
		Category:        domain.CategoryCity,
		Highlights:      []string{"Burj Khalifa", "Desert safari", "Luxury shopping", "Modern architecture"},
		BestTimeToVisit: "November to March",
		Activities:      []string{"Desert safari", "Shopping", "Fine dining", "Water parks", "Skydiving"},
	},
}
