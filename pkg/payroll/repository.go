package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/bizcalc/internal/database"
	log "github.com/sirupsen/logrus"
)

var ErrFreelancerNotFound = errors.New("freelancer not found")

// Repository stores freelancers with whatever tax fields it is given.
type Repository interface {
	Add(ctx context.Context, freelancer Freelancer) (int, error)
	GetAll(ctx context.Context) ([]Freelancer, error)
	GetById(ctx context.Context, id int) (Freelancer, error)
	Update(ctx context.Context, id int, freelancer Freelancer) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Add(ctx context.Context, freelancer Freelancer) (int, error) {
	query := `INSERT INTO freelancers (name, nationality, gross_payment, tax_rate, tax_amount, net_payment)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var lastInsertID int
	err := r.db.QueryRow(ctx, query,
		freelancer.Name,
		freelancer.Nationality,
		freelancer.GrossPayment,
		freelancer.TaxRate,
		freelancer.TaxAmount,
		freelancer.NetPayment,
	).Scan(&lastInsertID)
	if err != nil {
		return 0, database.Wrap("add freelancer", err)
	}
	log.Debugf("freelancer %d added", lastInsertID)
	return lastInsertID, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Freelancer, error) {
	query := `SELECT id, name, nationality, gross_payment, tax_rate, tax_amount, net_payment
				FROM freelancers ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, database.Wrap("list freelancers", err)
	}
	defer rows.Close()

	freelancers := make([]Freelancer, 0)
	for rows.Next() {
		var f Freelancer
		if err := rows.Scan(&f.Id, &f.Name, &f.Nationality, &f.GrossPayment, &f.TaxRate, &f.TaxAmount, &f.NetPayment); err != nil {
			return nil, database.Wrap("scan freelancer", err)
		}
		freelancers = append(freelancers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate freelancers", err)
	}
	return freelancers, nil
}

func (r *RepositoryImpl) GetById(ctx context.Context, id int) (Freelancer, error) {
	query := `SELECT id, name, nationality, gross_payment, tax_rate, tax_amount, net_payment
				FROM freelancers WHERE id = $1`
	var f Freelancer
	err := r.db.QueryRow(ctx, query, id).Scan(&f.Id, &f.Name, &f.Nationality, &f.GrossPayment, &f.TaxRate, &f.TaxAmount, &f.NetPayment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Freelancer{}, ErrFreelancerNotFound
		}
		return Freelancer{}, database.Wrap("get freelancer", err)
	}
	return f, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id int, freelancer Freelancer) (bool, error) {
	query := `UPDATE freelancers
				SET name = $1, nationality = $2, gross_payment = $3, tax_rate = $4, tax_amount = $5, net_payment = $6
				WHERE id = $7`
	result, err := r.db.Exec(ctx, query,
		freelancer.Name,
		freelancer.Nationality,
		freelancer.GrossPayment,
		freelancer.TaxRate,
		freelancer.TaxAmount,
		freelancer.NetPayment,
		id,
	)
	if err != nil {
		return false, database.Wrap("update freelancer", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM freelancers WHERE id = $1", id)
	if err != nil {
		return false, database.Wrap("delete freelancer", err)
	}
	return result.RowsAffected() == 1, nil
}
