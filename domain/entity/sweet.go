package entity

import (
	"time"
)

// Sweet is a single catalog record. Quantity never goes negative; the
// conditional decrement in the store enforces that, not the entity.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSweet(id, name, category string, price float64, quantity int) *Sweet {
	now := time.Now()
	return &Sweet{
		ID:        id,
		Name:      name,
		Category:  category,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
