package order

import (
	"time"

	"github.com/gofrs/uuid"
)

// Order is the pending-order record created when a checkout session is
// initiated. Customer and shipping fields are a snapshot taken at creation
// time, not a live reference to a user record. TotalPrice is fixed at creation
// and never recomputed, even if the product price changes later.
type Order struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ProductID     uuid.UUID `json:"productId" db:"product_id"`
	TotalPrice    float64   `json:"totalPrice" db:"total_price"`
	UserName      string    `json:"userName" db:"user_name"`
	Email         string    `json:"email" db:"email"`
	City          string    `json:"city" db:"city"`
	Address       string    `json:"address" db:"address"`
	ZipCode       string    `json:"zipCode" db:"zip_code"`
	Colors        []string  `json:"colorsArray" db:"colors"`
	PaidStatus    bool      `json:"paidStatus" db:"paid_status"`
	TransactionID string    `json:"transactionId" db:"transaction_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
