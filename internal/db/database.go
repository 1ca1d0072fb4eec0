package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wellywell/safetap/internal/types"
)

const (
	orderColumns   = "id, order_number, public_code, customer_name, email, amount_cents, currency, status, created_at, updated_at"
	paymentColumns = "id, order_id, amount_cents, currency, status, reference, created_at, updated_at"

	manualReference = "manual"
)

type Database struct {
	pool *pgxpool.Pool
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// StatusDecision looks at an order locked for update and returns the status it should be stored with.
type StatusDecision func(snapshot types.OrderWithPayments) (types.OrderStatus, error)

func NewDatabase(connString string) (*Database, error) {

	err := Migrate(connString)

	if err != nil {
		return nil, fmt.Errorf("failed to migrate %w", err)
	}

	ctx := context.Background()
	p, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	return &Database{
		pool: p,
	}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

func (d *Database) Close() {
	d.pool.Close()
}

func (d *Database) CreateAdmin(ctx context.Context, username string, password string) error {

	query := `
		INSERT INTO admin_user (username, password)
		VALUES ($1, $2)
		`
	_, err := d.pool.Exec(ctx, query, username, password)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return fmt.Errorf("%w", &UserExistsError{Username: username})
		}
		return err
	}
	return nil
}

func (d *Database) GetAdminHashedPassword(ctx context.Context, username string) (string, error) {
	query := `
		SELECT password
		FROM admin_user
		WHERE username = $1`

	row := d.pool.QueryRow(ctx, query, username)

	var password string

	err := row.Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w", &UserNotFoundError{Username: username})
		}
		return "", fmt.Errorf("unexpected DB error %w", err)
	}
	return password, nil
}

func (d *Database) CreateOrder(ctx context.Context, order types.NewOrder) (*types.OrderRecord, error) {
	query := `
		INSERT INTO sticker_order (order_number, public_code, customer_name, email, amount_cents, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING ` + orderColumns

	rows, err := d.pool.Query(ctx, query, order.OrderNum, uuid.NewString(), order.CustomerName,
		order.Email, order.AmountCents, order.Currency, types.OrderedStatus)
	if err != nil {
		return nil, fmt.Errorf("failed inserting order %w", err)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.OrderRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", &OrderExistsError{Order: order.OrderNum})
		}
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	return &record, nil
}

func (d *Database) AddPayment(ctx context.Context, orderNum string, payment types.NewPayment) (*types.PaymentRecord, error) {
	query := `
		INSERT INTO payment (order_id, amount_cents, currency, status, reference)
		SELECT id, $2, COALESCE(NULLIF($3, ''), currency), $4, $5
		FROM sticker_order
		WHERE order_number = $1
		RETURNING ` + paymentColumns

	rows, err := d.pool.Query(ctx, query, orderNum, payment.AmountCents, payment.Currency,
		types.PaymentPending, payment.Reference)
	if err != nil {
		return nil, fmt.Errorf("failed inserting payment %w", err)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.PaymentRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", &OrderNotFoundError{OrderNum: orderNum})
		}
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	return &record, nil
}

func (d *Database) GetOrder(ctx context.Context, orderID int) (*types.OrderWithPayments, error) {
	query := `SELECT ` + orderColumns + ` FROM sticker_order WHERE id = $1`

	rows, err := d.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}
	return d.collectOrder(ctx, d.pool, rows, &OrderNotFoundError{OrderID: orderID})
}

func (d *Database) GetOrderByNumber(ctx context.Context, orderNum string) (*types.OrderWithPayments, error) {
	query := `SELECT ` + orderColumns + ` FROM sticker_order WHERE order_number = $1`

	rows, err := d.pool.Query(ctx, query, orderNum)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}
	return d.collectOrder(ctx, d.pool, rows, &OrderNotFoundError{OrderNum: orderNum})
}

func (d *Database) collectOrder(ctx context.Context, q querier, rows pgx.Rows, notFound error) (*types.OrderWithPayments, error) {
	order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.OrderRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", notFound)
		}
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}

	payments, err := orderPayments(ctx, q, order.OrderID)
	if err != nil {
		return nil, err
	}
	return &types.OrderWithPayments{Order: order, Payments: payments}, nil
}

func orderPayments(ctx context.Context, q querier, orderID int) ([]types.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}

	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.PaymentRecord])
	if err != nil {
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	return payments, nil
}

// ListOrders pages through orders by id and attaches their payments.
func (d *Database) ListOrders(ctx context.Context, startID int, limit int) ([]types.OrderWithPayments, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM sticker_order
		WHERE id > $1
		ORDER BY id LIMIT $2
	`
	rows, err := d.pool.Query(ctx, query, startID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}

	orders, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.OrderRecord])
	if err != nil {
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	if len(orders) == 0 {
		return []types.OrderWithPayments{}, nil
	}

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}

	query = `
		SELECT ` + paymentColumns + `
		FROM payment
		WHERE order_id = ANY($1)
		ORDER BY id
	`
	rows, err = d.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}

	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.PaymentRecord])
	if err != nil {
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}

	byOrder := make(map[int][]types.PaymentRecord, len(orders))
	for _, p := range payments {
		byOrder[p.OrderID] = append(byOrder[p.OrderID], p)
	}

	result := make([]types.OrderWithPayments, 0, len(orders))
	for _, o := range orders {
		result = append(result, types.OrderWithPayments{Order: o, Payments: byOrder[o.OrderID]})
	}
	return result, nil
}

// TransitionOrder stores the status chosen by decide. Moving to PAID or
// REJECTED also records the payment outcome: with no payments a manual one is
// created, otherwise the newest pending payment takes the outcome.
func (d *Database) TransitionOrder(ctx context.Context, orderID int, decide StatusDecision) (*types.OrderWithPayments, error) {
	return d.updateOrderStatus(ctx, orderID, decide, true)
}

// RepairOrder stores the status chosen by decide and leaves payments alone.
func (d *Database) RepairOrder(ctx context.Context, orderID int, decide StatusDecision) (*types.OrderWithPayments, error) {
	return d.updateOrderStatus(ctx, orderID, decide, false)
}

func (d *Database) updateOrderStatus(ctx context.Context, orderID int, decide StatusDecision, syncPayments bool) (*types.OrderWithPayments, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + orderColumns + ` FROM sticker_order WHERE id = $1 FOR UPDATE`
	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed locking order %w", err)
	}
	snapshot, err := d.collectOrder(ctx, tx, rows, &OrderNotFoundError{OrderID: orderID})
	if err != nil {
		return nil, err
	}

	newStatus, err := decide(*snapshot)
	if err != nil {
		return nil, err
	}

	if syncPayments {
		err = syncPaymentOutcome(ctx, tx, snapshot, newStatus)
		if err != nil {
			return nil, err
		}
	}

	query = `
		UPDATE sticker_order
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + orderColumns
	rows, err = tx.Query(ctx, query, newStatus, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected DB error %w", err)
	}
	updated, err := d.collectOrder(ctx, tx, rows, &OrderNotFoundError{OrderID: orderID})
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return updated, nil
}

func syncPaymentOutcome(ctx context.Context, tx pgx.Tx, snapshot *types.OrderWithPayments, newStatus types.OrderStatus) error {
	var outcome types.PaymentStatus
	switch newStatus {
	case types.PaidStatus:
		outcome = types.PaymentVerified
	case types.RejectedStatus:
		outcome = types.PaymentRejected
	default:
		return nil
	}

	if len(snapshot.Payments) == 0 {
		query := `
			INSERT INTO payment (order_id, amount_cents, currency, status, reference)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.Exec(ctx, query, snapshot.Order.OrderID, snapshot.Order.AmountCents,
			snapshot.Order.Currency, outcome, manualReference)
		if err != nil {
			return fmt.Errorf("unexpected DB error %w", err)
		}
		return nil
	}

	query := `
		UPDATE payment
		SET status = $1, updated_at = now()
		WHERE id = (
			SELECT id FROM payment
			WHERE order_id = $2 AND status = $3
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)
	`
	_, err := tx.Exec(ctx, query, outcome, snapshot.Order.OrderID, types.PaymentPending)
	if err != nil {
		return fmt.Errorf("unexpected DB error %w", err)
	}
	return nil
}

func (d *Database) GetPendingPayments(ctx context.Context, startID int, limit int) ([]types.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment
		WHERE status = $1
		AND reference <> '' AND reference <> $2
		AND id > $3
		ORDER BY id LIMIT $4
	`
	rows, err := d.pool.Query(ctx, query, types.PaymentPending, manualReference, startID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}

	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.PaymentRecord])
	if err != nil {
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	return payments, nil
}

func (d *Database) UpdatePendingPayment(ctx context.Context, paymentID int, newStatus types.PaymentStatus) error {
	query := `
		UPDATE payment
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`
	tag, err := d.pool.Exec(ctx, query, newStatus, paymentID, types.PaymentPending)
	if err != nil {
		return fmt.Errorf("unexpected DB error %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %d: %w", paymentID, ErrPaymentNotPending)
	}
	return nil
}
