package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sweetshop/sweetshop/application/port/outbound"
	"github.com/sweetshop/sweetshop/domain/entity"
)

type sweetRepository struct {
	db *sql.DB
}

func NewSweetRepository(db *sql.DB) outbound.SweetRepository {
	return &sweetRepository{db: db}
}

const sweetColumns = "id, name, category, price, quantity, created_at, updated_at"

func (r *sweetRepository) FindAll(ctx context.Context) ([]*entity.Sweet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sweets
		ORDER BY created_at
	`, sweetColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweets: %w", err)
	}
	defer rows.Close()

	return scanSweets(rows)
}

func (r *sweetRepository) Search(ctx context.Context, filter outbound.SweetFilter) ([]*entity.Sweet, error) {
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	addClause := func(clause string) {
		if whereClause == "" {
			whereClause = "WHERE " + clause
		} else {
			whereClause += " AND " + clause
		}
	}

	if filter.Query != "" {
		addClause(fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Query+"%")
		argIndex++
	}

	if filter.MinPrice != nil {
		addClause(fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		addClause(fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sweets
		%s
		ORDER BY created_at
	`, sweetColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}
	defer rows.Close()

	return scanSweets(rows)
}

func (r *sweetRepository) FindByID(ctx context.Context, id string) (*entity.Sweet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sweets
		WHERE id = $1
	`, sweetColumns)

	sweet, err := scanSweet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to find sweet by ID: %w", err)
	}

	return sweet, nil
}

func (r *sweetRepository) Create(ctx context.Context, sweet *entity.Sweet) error {
	query := `
		INSERT INTO sweets (id, name, category, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		sweet.ID,
		sweet.Name,
		sweet.Category,
		sweet.Price,
		sweet.Quantity,
		sweet.CreatedAt,
		sweet.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create sweet: %w", err)
	}

	return nil
}

func (r *sweetRepository) Update(ctx context.Context, id string, patch outbound.SweetPatch) (*entity.Sweet, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	setClause := ""
	args := []interface{}{id}
	argIndex := 2

	addSet := func(column string, value interface{}) {
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.Quantity != nil {
		addSet("quantity", *patch.Quantity)
	}

	query := fmt.Sprintf(`
		UPDATE sweets
		SET %s, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s
	`, setClause, sweetColumns)

	sweet, err := scanSweet(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to update sweet: %w", err)
	}

	return sweet, nil
}

func (r *sweetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrSweetNotFound
	}

	return nil
}

// DecrementQuantity is a single conditional statement, so the store
// serializes concurrent purchases of the same record and the quantity
// invariant holds without an explicit transaction.
func (r *sweetRepository) DecrementQuantity(ctx context.Context, id string, qty int) (*entity.Sweet, error) {
	query := fmt.Sprintf(`
		UPDATE sweets
		SET quantity = quantity - $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND quantity >= $2
		RETURNING %s
	`, sweetColumns)

	sweet, err := scanSweet(r.db.QueryRowContext(ctx, query, id, qty))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Zero rows: either the record is gone or stock is short.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, outbound.ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to decrement quantity: %w", err)
	}

	return sweet, nil
}

func (r *sweetRepository) IncrementQuantity(ctx context.Context, id string, qty int) (*entity.Sweet, error) {
	query := fmt.Sprintf(`
		UPDATE sweets
		SET quantity = quantity + $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s
	`, sweetColumns)

	sweet, err := scanSweet(r.db.QueryRowContext(ctx, query, id, qty))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to increment quantity: %w", err)
	}

	return sweet, nil
}

func scanSweet(row *sql.Row) (*entity.Sweet, error) {
	var sweet entity.Sweet
	err := row.Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.CreatedAt,
		&sweet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

func scanSweets(rows *sql.Rows) ([]*entity.Sweet, error) {
	var sweets []*entity.Sweet
	for rows.Next() {
		var sweet entity.Sweet
		err := rows.Scan(
			&sweet.ID,
			&sweet.Name,
			&sweet.Category,
			&sweet.Price,
			&sweet.Quantity,
			&sweet.CreatedAt,
			&sweet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet: %w", err)
		}
		sweets = append(sweets, &sweet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sweets: %w", err)
	}

	return sweets, nil
}
