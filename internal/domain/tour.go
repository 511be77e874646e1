package domain

type Region string

const (
	RegionAbkhazia        Region = "abkhazia"
	RegionSochi           Region = "sochi"
	RegionKrasnayaPolyana Region = "krasnaya_polyana"
	RegionOlympicPark     Region = "olympic_park"
)

func (r Region) Valid() bool {
	switch r {
	case RegionAbkhazia, RegionSochi, RegionKrasnayaPolyana, RegionOlympicPark:
		return true
	}
	return false
}

type TourType string

const (
	TypeTour      TourType = "tour"
	TypeExcursion TourType = "excursion"
)

func (t TourType) Valid() bool { return t == TypeTour || t == TypeExcursion }

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Tour is owned by the backend (or the fixture set) and read-only here.
type Tour struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	ShortDesc     string     `json:"short_desc"`
	DescriptionMD string     `json:"description_md"`
	Region        Region     `json:"region"`
	Type          TourType   `json:"type"`
	Difficulty    Difficulty `json:"difficulty"`
	DurationHours float64    `json:"duration_hours"`
	PriceFrom     int64      `json:"price_from"`
	Currency      string     `json:"currency"`
	CoverImage    string     `json:"cover_image"`
	GalleryImages []string   `json:"gallery_images"`
	Tags          []string   `json:"tags"`
	IsActive      bool       `json:"is_active"`
}

// TourFilter narrows the active catalog; zero values mean "all".
type TourFilter struct {
	Region Region
	Type   TourType
}

func (f TourFilter) Match(t Tour) bool {
	if f.Region != "" && t.Region != f.Region {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	return true
}
