package domain

// VenueRecord is the insert shape for a venue row. Relational sub-objects
// (contents, photos, tag links) are written separately by the caller.
type VenueRecord struct {
	CityID        int64
	CategoryID    int64
	Name          string
	Slug          string
	Neighborhood  *string
	Address       string
	Latitude      *float64
	Longitude     *float64
	WhatsApp      *string
	Phone         *string
	Instagram     *string
	Website       *string
	PriceRange    *PriceRange
	DressCode     *string
	MusicStyle    *string
	AgePolicy     *string
	AlcoholPolicy *string
	Attributes    Attributes
	Status        VenueStatus
	IsSponsored   bool
	PriorityScore int
	InternalNotes *string
}

// VenueChanges is the sparse update shape: nil fields are left untouched.
type VenueChanges struct {
	CityID        *int64
	CategoryID    *int64
	Name          *string
	Slug          *string
	Neighborhood  *string
	Address       *string
	Latitude      *float64
	Longitude     *float64
	WhatsApp      *string
	Phone         *string
	Instagram     *string
	Website       *string
	PriceRange    *PriceRange
	DressCode     *string
	MusicStyle    *string
	AgePolicy     *string
	AlcoholPolicy *string
	Attributes    *Attributes
	Status        *VenueStatus
	IsSponsored   *bool
	PriorityScore *int
	InternalNotes *string
}

// CollectionRecord is the insert shape for a collection row.
type CollectionRecord struct {
	CityID      int64
	Name        string
	Slug        string
	Description *string
	VenueIDs    []int64
	IsActive    bool
	SortOrder   int
}

// CollectionChanges is the sparse update shape for a collection.
type CollectionChanges struct {
	CityID      *int64
	Name        *string
	Slug        *string
	Description *string
	VenueIDs    *[]int64
	IsActive    *bool
	SortOrder   *int
}
