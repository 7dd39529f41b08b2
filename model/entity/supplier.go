package entity

import "time"

// Supplier is a vendor rated by users.
type Supplier struct {
	ID            int64   `json:"id,omitempty"`
	Name          string  `json:"name"`
	ContactInfo   string  `json:"contact_info"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// SupplierReview is a single 1..5 rating of a supplier.
type SupplierReview struct {
	ID         int64     `json:"id,omitempty"`
	SupplierID int64     `json:"supplier_id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
