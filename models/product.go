package models

import "time"

type Product struct {
	ID             string    `json:"id" yaml:"id"`
	StoreID        string    `json:"store_id" yaml:"store_id"`
	StoreName      string    `json:"store_name" yaml:"store_name"`
	Name           string    `json:"name" yaml:"name"`
	Description    string    `json:"description" yaml:"description"`
	Category       string    `json:"category" yaml:"category"`
	Price          float64   `json:"price" yaml:"price"`
	AvailableUnits int       `json:"available_units" yaml:"available_units"`
	ImageURL       string    `json:"image_url" yaml:"image_url"`
	Sizes          []string  `json:"sizes" yaml:"sizes"`
	CreatedAt      time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

type ProductPage struct {
	Total    int64     `json:"total" yaml:"total"`
	Page     int       `json:"page" yaml:"page"`
	Limit    int       `json:"limit" yaml:"limit"`
	Products []Product `json:"products" yaml:"products"`
}
