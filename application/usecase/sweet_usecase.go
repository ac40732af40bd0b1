package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sweetshop/sweetshop/application/port/inbound"
	"github.com/sweetshop/sweetshop/application/port/outbound"
	"github.com/sweetshop/sweetshop/domain/entity"
	"github.com/sweetshop/sweetshop/infrastructure/service/logger"
)

type SweetUseCase struct {
	sweetRepository outbound.SweetRepository
	logger          logger.Logger
}

func NewSweetUseCase(sweetRepo outbound.SweetRepository, logger logger.Logger) inbound.SweetUseCase {
	return &SweetUseCase{
		sweetRepository: sweetRepo,
		logger:          logger,
	}
}

func (uc *SweetUseCase) List(ctx context.Context) ([]*entity.Sweet, error) {
	sweets, err := uc.sweetRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to list sweets", err, nil)
		return nil, fmt.Errorf("failed to list sweets: %w", err)
	}
	return sweets, nil
}

func (uc *SweetUseCase) Search(ctx context.Context, filter outbound.SweetFilter) ([]*entity.Sweet, error) {
	sweets, err := uc.sweetRepository.Search(ctx, filter)
	if err != nil {
		uc.logger.Error(ctx, "Failed to search sweets", err, map[string]interface{}{
			"query": filter.Query,
		})
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}
	return sweets, nil
}

func (uc *SweetUseCase) Create(ctx context.Context, req inbound.CreateSweetRequest) (*entity.Sweet, error) {
	if err := validateSweetFields(req.Name, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	sweet := entity.NewSweet(uuid.New().String(), req.Name, req.Category, req.Price, req.Quantity)
	if err := uc.sweetRepository.Create(ctx, sweet); err != nil {
		uc.logger.Error(ctx, "Failed to create sweet", err, map[string]interface{}{
			"name": req.Name,
		})
		return nil, fmt.Errorf("failed to create sweet: %w", err)
	}

	uc.logger.Info(ctx, "Sweet created", map[string]interface{}{
		"sweet_id": sweet.ID,
		"name":     sweet.Name,
	})
	return sweet, nil
}

func (uc *SweetUseCase) Update(ctx context.Context, id string, patch outbound.SweetPatch) (*entity.Sweet, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, inbound.ErrInvalidSweet
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, inbound.ErrInvalidSweet
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, inbound.ErrInvalidSweet
	}

	sweet, err := uc.sweetRepository.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, outbound.ErrSweetNotFound) {
			return nil, err
		}
		uc.logger.Error(ctx, "Failed to update sweet", err, map[string]interface{}{
			"sweet_id": id,
		})
		return nil, fmt.Errorf("failed to update sweet: %w", err)
	}
	return sweet, nil
}

func (uc *SweetUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.sweetRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrSweetNotFound) {
			return err
		}
		uc.logger.Error(ctx, "Failed to delete sweet", err, map[string]interface{}{
			"sweet_id": id,
		})
		return fmt.Errorf("failed to delete sweet: %w", err)
	}

	uc.logger.Info(ctx, "Sweet deleted", map[string]interface{}{
		"sweet_id": id,
	})
	return nil
}

// Purchase decrements stock by qty. The repository performs the decrement
// as a single conditional statement, so a concurrent purchase of the last
// unit loses cleanly with ErrInsufficientStock instead of overselling.
func (uc *SweetUseCase) Purchase(ctx context.Context, id string, qty int) (*entity.Sweet, error) {
	if qty <= 0 {
		return nil, inbound.ErrInvalidQuantity
	}

	sweet, err := uc.sweetRepository.DecrementQuantity(ctx, id, qty)
	if err != nil {
		if errors.Is(err, outbound.ErrSweetNotFound) || errors.Is(err, outbound.ErrInsufficientStock) {
			return nil, err
		}
		uc.logger.Error(ctx, "Failed to purchase sweet", err, map[string]interface{}{
			"sweet_id": id,
			"qty":      qty,
		})
		return nil, fmt.Errorf("failed to purchase sweet: %w", err)
	}

	uc.logger.Info(ctx, "Sweet purchased", map[string]interface{}{
		"sweet_id":  id,
		"qty":       qty,
		"remaining": sweet.Quantity,
	})
	return sweet, nil
}

func (uc *SweetUseCase) Restock(ctx context.Context, id string, qty int) (*entity.Sweet, error) {
	if qty <= 0 {
		return nil, inbound.ErrInvalidQuantity
	}

	sweet, err := uc.sweetRepository.IncrementQuantity(ctx, id, qty)
	if err != nil {
		if errors.Is(err, outbound.ErrSweetNotFound) {
			return nil, err
		}
		uc.logger.Error(ctx, "Failed to restock sweet", err, map[string]interface{}{
			"sweet_id": id,
			"qty":      qty,
		})
		return nil, fmt.Errorf("failed to restock sweet: %w", err)
	}

	uc.logger.Info(ctx, "Sweet restocked", map[string]interface{}{
		"sweet_id": id,
		"qty":      qty,
		"total":    sweet.Quantity,
	})
	return sweet, nil
}

func validateSweetFields(name string, price float64, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return inbound.ErrInvalidSweet
	}
	if price < 0 {
		return inbound.ErrInvalidSweet
	}
	if quantity < 0 {
		return inbound.ErrInvalidSweet
	}
	return nil
}
