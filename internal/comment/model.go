package comment

import (
	"time"

	"github.com/gofrs/uuid"
)

// Comment is a product comment. A reply carries the id of its parent comment;
// top-level comments have a nil ParentID.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProductID uuid.UUID  `json:"productId" db:"product_id"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" db:"parent_id"`
	Author    string     `json:"author" db:"author"`
	Body      string     `json:"body" db:"body"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	Replies   []Comment  `json:"replies,omitempty" db:"-"`
}
