package inbound

import (
	"context"
	"errors"

	"github.com/sweetshop/sweetshop/application/port/outbound"
	"github.com/sweetshop/sweetshop/domain/entity"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidSweet    = errors.New("invalid sweet fields")
)

type CreateSweetRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type SweetUseCase interface {
	List(ctx context.Context) ([]*entity.Sweet, error)
	Search(ctx context.Context, filter outbound.SweetFilter) ([]*entity.Sweet, error)
	Create(ctx context.Context, req CreateSweetRequest) (*entity.Sweet, error)
	Update(ctx context.Context, id string, patch outbound.SweetPatch) (*entity.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string, qty int) (*entity.Sweet, error)
	Restock(ctx context.Context, id string, qty int) (*entity.Sweet, error)
}
