package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, owner_id, name, description, price, price_unit, locker_id, status, created_on, updated_on, deleted_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (owner_id, name, description, price, price_unit, locker_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, it.OwnerID, it.Name, it.Description, it.Price, it.PriceUnit, it.LockerID, it.Status, now, now).Scan(&it.ID)
	if err != nil {
		if uniqueViolation(err, "items_locker_id_key") {
			return apperr.Conflict("locker is already in use")
		}
		return err
	}
	it.CreatedOn = now.Format(time.RFC3339)
	it.UpdatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1 AND deleted_on IS NULL`, id))
	if err != nil {
		return nil, err
	}

	images, err := r.listImages(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Images = images
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET name=$1, description=$2, price=$3, price_unit=$4, status=$5, updated_on=$6
	          WHERE id=$7 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, it.Name, it.Description, it.Price, it.PriceUnit, it.Status, time.Now().UTC(), it.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

// Delete soft-deletes the item. The partial unique index on locker_id only
// covers live rows, so deletion releases the locker without clearing the
// column.
func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET deleted_on=$1, updated_on=$1 WHERE id=$2 AND deleted_on IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

func (r *itemRepository) ListByStatus(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE status = $1 AND deleted_on IS NULL ORDER BY id`, status)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE owner_id = $1 AND deleted_on IS NULL ORDER BY id`, ownerID)
}

func (r *itemRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *itemRepository) Stats(ctx context.Context) (*domain.ItemStats, error) {
	stats := &domain.ItemStats{}
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'registered'),
	                 count(*) FILTER (WHERE status = 'rented'),
	                 count(*) FILTER (WHERE status = 'returned')
	          FROM items WHERE deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Registered, &stats.Rented, &stats.Returned)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *itemRepository) AddImage(ctx context.Context, img *domain.ItemImage) error {
	query := `INSERT INTO item_images (item_id, file_path, thumbnail_path, position, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	img.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, img.ItemID, img.FilePath, img.ThumbnailPath, img.Position, img.CreatedOn).Scan(&img.ID)
}

func (r *itemRepository) listImages(ctx context.Context, itemID int32) ([]domain.ItemImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, file_path, thumbnail_path, position, created_on
		 FROM item_images WHERE item_id = $1 ORDER BY position`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ItemImage
	for rows.Next() {
		var img domain.ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.FilePath, &img.ThumbnailPath, &img.Position, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// AssignLocker relies on the partial unique index to reject a locker held
// by another live item, closing the check-then-assign race.
func (r *itemRepository) AssignLocker(ctx context.Context, itemID int32, lockerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET locker_id=$1, updated_on=$2 WHERE id=$3 AND deleted_on IS NULL`,
		lockerID, time.Now().UTC(), itemID)
	if err != nil {
		if uniqueViolation(err, "items_locker_id_key") {
			return apperr.Conflict("locker is already in use")
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

func (r *itemRepository) ReleaseLocker(ctx context.Context, itemID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET locker_id=NULL, updated_on=$1 WHERE id=$2 AND deleted_on IS NULL`,
		time.Now().UTC(), itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

func (r *itemRepository) HeldLockers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT locker_id FROM items WHERE locker_id IS NOT NULL AND deleted_on IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var held []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		held = append(held, id)
	}
	return held, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	it := &domain.Item{}
	var createdOn, updatedOn time.Time
	var deletedOn sql.NullTime
	err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Price, &it.PriceUnit,
		&it.LockerID, &it.Status, &createdOn, &updatedOn, &deletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item not found")
	}
	if err != nil {
		return nil, err
	}
	it.CreatedOn = createdOn.Format(time.RFC3339)
	it.UpdatedOn = updatedOn.Format(time.RFC3339)
	if deletedOn.Valid {
		formatted := deletedOn.Time.Format(time.RFC3339)
		it.DeletedOn = &formatted
	}
	return it, nil
}
