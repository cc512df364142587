package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/bizcalc/internal/database"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Repository interface {
	Save(ctx context.Context, transaction Transaction) (int, error)
	Update(ctx context.Context, id int, transaction Transaction) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	GetById(ctx context.Context, id int) (Transaction, error)
	GetAll(ctx context.Context) ([]Transaction, error)
	GetFiltered(ctx context.Context, filter Filter) ([]Transaction, error)
	ExportAll(ctx context.Context) (Table, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, date, type, amount, currency, vnd_amount, description, category, reference,
       exchange_rate, created_at`

// Rows of the same date keep insertion order reversed so listings are stable.
const orderBy = ` ORDER BY date DESC, id DESC`

func (r *RepositoryImpl) Save(ctx context.Context, transaction Transaction) (int, error) {
	query := `INSERT INTO transactions
				(date, type, amount, currency, vnd_amount, description, category, reference, exchange_rate)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var lastInsertID int
	err := r.db.QueryRow(ctx, query,
		transaction.Date,
		transaction.Type,
		transaction.Amount,
		transaction.Currency,
		transaction.VndAmount,
		nullIfEmpty(transaction.Description),
		transaction.Category,
		nullIfEmpty(transaction.Reference),
		transaction.ExchangeRate,
	).Scan(&lastInsertID)
	if err != nil {
		return 0, database.Wrap("save transaction", err)
	}
	log.Debugf("transaction %d saved", lastInsertID)
	return lastInsertID, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id int, transaction Transaction) (bool, error) {
	query := `UPDATE transactions
				SET date = $1, type = $2, amount = $3, currency = $4, vnd_amount = $5,
				    description = $6, category = $7, reference = $8, exchange_rate = $9
				WHERE id = $10`
	result, err := r.db.Exec(ctx, query,
		transaction.Date,
		transaction.Type,
		transaction.Amount,
		transaction.Currency,
		transaction.VndAmount,
		nullIfEmpty(transaction.Description),
		transaction.Category,
		nullIfEmpty(transaction.Reference),
		transaction.ExchangeRate,
		id,
	)
	if err != nil {
		return false, database.Wrap("update transaction", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return false, database.Wrap("delete transaction", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) GetById(ctx context.Context, id int) (Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE id = $1`
	transaction, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrTransactionNotFound
		}
		return Transaction{}, database.Wrap("get transaction", err)
	}
	return transaction, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	return r.query(ctx, "list transactions", `SELECT `+selectColumns+` FROM transactions`+orderBy)
}

func (r *RepositoryImpl) GetFiltered(ctx context.Context, filter Filter) ([]Transaction, error) {
	var conditions []string
	var args []any
	if len(filter.Types) > 0 {
		args = append(args, filter.Types)
		conditions = append(conditions, fmt.Sprintf("type = ANY($%d)", len(args)))
	}
	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)))
	}

	query := `SELECT ` + selectColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	return r.query(ctx, "filter transactions", query+orderBy, args...)
}

func (r *RepositoryImpl) ExportAll(ctx context.Context) (Table, error) {
	transactions, err := r.GetAll(ctx)
	if err != nil {
		return Table{}, err
	}
	return toTable(transactions), nil
}

func (r *RepositoryImpl) query(ctx context.Context, op string, query string, args ...any) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap(op, err)
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, database.Wrap(op, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap(op, err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	var description, reference *string
	err := row.Scan(
		&t.Id,
		&t.Date,
		&t.Type,
		&t.Amount,
		&t.Currency,
		&t.VndAmount,
		&description,
		&t.Category,
		&reference,
		&t.ExchangeRate,
		&t.CreatedAt,
	)
	if err != nil {
		return Transaction{}, err
	}
	if description != nil {
		t.Description = *description
	}
	if reference != nil {
		t.Reference = *reference
	}
	return t, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
