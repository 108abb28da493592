package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"poolpower/internal/domain"
	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
	"poolpower/pkg/errcodes"
)

const dealColumns = `id, item_name, short_description, target_qty, est_price_per_item, image_url, is_active, position`

type DealRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// ReplaceAll makes the table mirror deals: every deal is upserted with its
// position in the slice, and rows whose id is missing from deals are
// deactivated. Rows are never deleted.
func (r *DealRepository) ReplaceAll(ctx context.Context, deals []entity.Deal) (entity.ImportResult, error) {
	var result entity.ImportResult

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		syncedAt := r.now()
		ids := make([]string, 0, len(deals))

		for i, deal := range deals {
			if err := r.upsertTx(ctx, tx, fromDeal(deal, i, syncedAt)); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError,
					fmt.Sprintf("failed at index %d", i))
			}

			ids = append(ids, deal.ID.String())
		}

		result.Upserted = len(deals)

		deactivated, err := r.deactivateMissingTx(ctx, tx, ids)
		if err != nil {
			return err
		}

		result.Deactivated = deactivated

		return nil
	})
	if err != nil {
		return entity.ImportResult{}, err
	}

	return result, nil
}

// ListActive returns active deals in sheet order.
func (r *DealRepository) ListActive(ctx context.Context) ([]entity.Deal, error) {
	query := r.db.Rebind(`SELECT ` + dealColumns + ` FROM deals WHERE is_active = ? ORDER BY position ASC, id ASC`)

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, true); err != nil {
		return nil, domain.WrapError(err, errcodes.CatalogUnavailable, "failed to list deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, s := range schemas {
		deals = append(deals, s.toDomain())
	}

	return deals, nil
}

// GetByID returns a deal whether it is active or not.
func (r *DealRepository) GetByID(ctx context.Context, id value.DealID) (entity.Deal, error) {
	query := r.db.Rebind(`SELECT ` + dealColumns + ` FROM deals WHERE id = ?`)

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return entity.Deal{}, domain.WrapError(err, errcodes.CatalogUnavailable, "failed to get deal")
	}

	return schema.toDomain(), nil
}

func (r *DealRepository) upsertTx(ctx context.Context, tx *sqlx.Tx, schema dealSchema) error {
	query := `
		INSERT INTO deals (` + dealColumns + `, synced_at)
		VALUES (:id, :item_name, :short_description, :target_qty, :est_price_per_item,
		        :image_url, :is_active, :position, :synced_at)
		ON CONFLICT (id) DO UPDATE SET
			item_name = excluded.item_name,
			short_description = excluded.short_description,
			target_qty = excluded.target_qty,
			est_price_per_item = excluded.est_price_per_item,
			image_url = excluded.image_url,
			is_active = excluded.is_active,
			position = excluded.position,
			synced_at = excluded.synced_at`

	if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
		return fmt.Errorf("tx.NamedExec: %w", err)
	}

	return nil
}

func (r *DealRepository) deactivateMissingTx(ctx context.Context, tx *sqlx.Tx, keep []string) (int, error) {
	var (
		query string
		args  []any
		err   error
	)

	if len(keep) == 0 {
		query, args = `UPDATE deals SET is_active = ? WHERE is_active = ?`, []any{false, true}
	} else {
		query, args, err = sqlx.In(`UPDATE deals SET is_active = ? WHERE is_active = ? AND id NOT IN (?)`, false, true, keep)
		if err != nil {
			return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
		}
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to deactivate deals")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	return int(rows), nil
}
