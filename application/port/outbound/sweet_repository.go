package outbound

import (
	"context"
	"errors"

	"github.com/sweetshop/sweetshop/domain/entity"
)

var (
	ErrSweetNotFound     = errors.New("sweet not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// SweetFilter narrows a catalog search. A nil field omits that clause
// entirely; there are no default bounds.
type SweetFilter struct {
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

// SweetPatch is the whitelisted partial-update structure. Only non-nil
// fields are applied; anything else in a request body never reaches the
// store.
type SweetPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p SweetPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Quantity == nil
}

type SweetRepository interface {
	FindAll(ctx context.Context) ([]*entity.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]*entity.Sweet, error)
	FindByID(ctx context.Context, id string) (*entity.Sweet, error)
	Create(ctx context.Context, sweet *entity.Sweet) error
	Update(ctx context.Context, id string, patch SweetPatch) (*entity.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementQuantity applies a conditional single-statement decrement so
	// concurrent purchases can never drive quantity negative. Returns
	// ErrInsufficientStock when the record exists but holds less than qty.
	DecrementQuantity(ctx context.Context, id string, qty int) (*entity.Sweet, error)

	// IncrementQuantity applies an unconditional single-statement increment.
	IncrementQuantity(ctx context.Context, id string, qty int) (*entity.Sweet, error)
}
