// package models defines the data model for the video platform client
package models

import (
	"time"
)

// Model is a record the client keeps in its own database.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error
}

// ReceiptFilter narrows a receipt listing. Zero fields match everything.
type ReceiptFilter struct {
	Username string
	VideoID  string
	// Limit keeps only the newest N receipts, still returned oldest first.
	Limit int
}

// Repository stores local records of type T.
type Repository[T Model, F any] interface {
	Create(model T) error
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error
	List(filter F) ([]T, error)
}
