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

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `r.id, r.item_id, r.borrower_id, r.start_time, r.end_time, r.is_returned,
	r.usage_fee, r.service_fee, r.deposit_amount, r.total_charge, r.deducted_amount, r.damage_reported,
	r.created_on, r.updated_on`

// CreateActive settles rental creation atomically. All preconditions are
// verified again under a row lock on the item, so two concurrent creations
// for the same item cannot both pass; the partial unique index on active
// rentals is the backstop.
func (r *rentalRepository) CreateActive(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var ownerID int32
	var status domain.ItemStatus
	err = tx.QueryRowContext(ctx,
		`SELECT owner_id, status FROM items WHERE id = $1 AND deleted_on IS NULL FOR UPDATE`,
		rt.ItemID).Scan(&ownerID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("item not found")
	}
	if err != nil {
		return err
	}
	if status != domain.ItemStatusRegistered {
		return apperr.Conflict("item is not rentable")
	}
	if ownerID == rt.BorrowerID {
		return apperr.Conflict("owners cannot rent their own item")
	}

	// The status flag could be stale; the rental table is authoritative.
	var active int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM rentals WHERE item_id = $1 AND NOT is_returned`,
		rt.ItemID).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperr.Conflict("item already has an active rental")
	}

	var balance int32
	err = tx.QueryRowContext(ctx,
		`SELECT point FROM users WHERE id = $1 FOR UPDATE`, rt.BorrowerID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("borrower not found")
	}
	if err != nil {
		return err
	}
	if balance < rt.TotalCharge {
		return apperr.Insufficient("not enough points for this rental")
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET point = point - $1, updated_on = $2 WHERE id = $3`,
		rt.TotalCharge, now, rt.BorrowerID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET status = $1, updated_on = $2 WHERE id = $3`,
		domain.ItemStatusRented, now, rt.ItemID); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO rentals (item_id, borrower_id, start_time, end_time, is_returned,
		                      usage_fee, service_fee, deposit_amount, total_charge,
		                      deducted_amount, damage_reported, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7, $8, 0, FALSE, $9, $9) RETURNING id`,
		rt.ItemID, rt.BorrowerID, rt.StartTime, rt.EndTime,
		rt.UsageFee, rt.ServiceFee, rt.DepositAmount, rt.TotalCharge, now).Scan(&rt.ID)
	if err != nil {
		if uniqueViolation(err, "rentals_active_item_key") {
			return apperr.Conflict("item already has an active rental")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	rt.CreatedOn = now.Format(time.RFC3339)
	rt.UpdatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+rentalColumns+`, i.id, i.owner_id, i.name, i.description, i.price, i.price_unit, i.locker_id, i.status
		 FROM rentals r JOIN items i ON i.id = r.item_id WHERE r.id = $1`, id)
	rt, err := scanRentalWithItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("rental not found")
	}
	return rt, err
}

func (r *rentalRepository) List(ctx context.Context, isReturned *bool) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `, i.id, i.owner_id, i.name, i.description, i.price, i.price_unit, i.locker_id, i.status
	          FROM rentals r JOIN items i ON i.id = r.item_id`
	args := []interface{}{}
	if isReturned != nil {
		query += ` WHERE r.is_returned = $1`
		args = append(args, *isReturned)
	}
	query += ` ORDER BY r.id`
	return r.listQuery(ctx, query, args...)
}

func (r *rentalRepository) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `, i.id, i.owner_id, i.name, i.description, i.price, i.price_unit, i.locker_id, i.status
	          FROM rentals r JOIN items i ON i.id = r.item_id WHERE r.borrower_id = $1 ORDER BY r.id`
	return r.listQuery(ctx, query, borrowerID)
}

func (r *rentalRepository) ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `, i.id, i.owner_id, i.name, i.description, i.price, i.price_unit, i.locker_id, i.status
	          FROM rentals r JOIN items i ON i.id = r.item_id
	          WHERE NOT r.is_returned AND r.end_time < $1 ORDER BY r.end_time`
	return r.listQuery(ctx, query, now)
}

func (r *rentalRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRentalWithItem(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

// SettleReturn applies the return settlement. The guard on is_returned
// makes a concurrent or repeated settlement fail with a conflict instead
// of deducting twice.
func (r *rentalRepository) SettleReturn(ctx context.Context, rentalID int32, damageReported bool, deductedAmount int32) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET is_returned = TRUE, damage_reported = $1, deducted_amount = $2, updated_on = $3
		 WHERE id = $4 AND NOT is_returned`,
		damageReported, deductedAmount, now, rentalID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM rentals WHERE id = $1)`, rentalID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("rental not found")
		}
		return nil, apperr.Conflict("rental is already returned")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET status = $1, updated_on = $2
		 WHERE id = (SELECT item_id FROM rentals WHERE id = $3) AND status = $4`,
		domain.ItemStatusRegistered, now, rentalID, domain.ItemStatusRented); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, rentalID)
}

func (r *rentalRepository) Extend(ctx context.Context, rentalID int32, by time.Duration) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var isReturned bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_returned FROM rentals WHERE id = $1 FOR UPDATE`, rentalID).Scan(&isReturned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("rental not found")
	}
	if err != nil {
		return nil, err
	}
	if isReturned {
		return nil, apperr.Conflict("rental is already returned")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rentals SET end_time = end_time + make_interval(secs => $1), updated_on = $2 WHERE id = $3`,
		by.Seconds(), time.Now().UTC(), rentalID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, rentalID)
}

func (r *rentalRepository) StatsByBorrower(ctx context.Context, borrowerID int32) (*domain.RentalStats, error) {
	stats := &domain.RentalStats{UserID: borrowerID}
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE is_returned),
	                 count(*) FILTER (WHERE NOT is_returned)
	          FROM rentals WHERE borrower_id = $1`
	err := r.db.QueryRowContext(ctx, query, borrowerID).Scan(&stats.Total, &stats.Returned, &stats.NotReturned)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanRentalWithItem(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	it := &domain.Item{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&rt.ID, &rt.ItemID, &rt.BorrowerID, &rt.StartTime, &rt.EndTime, &rt.IsReturned,
		&rt.UsageFee, &rt.ServiceFee, &rt.DepositAmount, &rt.TotalCharge, &rt.DeductedAmount, &rt.DamageReported,
		&createdOn, &updatedOn,
		&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Price, &it.PriceUnit, &it.LockerID, &it.Status)
	if err != nil {
		return nil, err
	}
	rt.CreatedOn = createdOn.Format(time.RFC3339)
	rt.UpdatedOn = updatedOn.Format(time.RFC3339)
	rt.Item = it
	return rt, nil
}
