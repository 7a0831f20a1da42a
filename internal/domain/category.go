package domain

// Category is a global venue category (nightclub, rooftop, lounge, ...).
// Priority controls display order on category pills, lowest first.
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	Priority int    `db:"priority" json:"priority"`
}
