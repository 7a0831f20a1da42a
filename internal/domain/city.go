package domain

import "time"

type City struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	HeroImage   *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	Latitude    *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64  `db:"longitude" json:"longitude,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
