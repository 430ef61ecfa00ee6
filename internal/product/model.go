package product

import (
	"time"

	"github.com/gofrs/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Category    string    `json:"category" db:"category"`
	Brand       string    `json:"brand" db:"brand"`
	Title       string    `json:"title" db:"title"`
	Images      []string  `json:"images" db:"images"`
	Colors      []string  `json:"colors" db:"colors"`
	Price       float64   `json:"price" db:"price"`
	Discount    float64   `json:"discount" db:"discount"`
	Percent     float64   `json:"percent" db:"percent"`
	Description string    `json:"description" db:"description"`
	Rating      []int32   `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
