package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/bizcalc/internal/utils"
	"github.com/shopspring/decimal"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

type Service interface {
	Save(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, id int, transaction Transaction) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	GetById(ctx context.Context, id int) (Transaction, error)
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	Export(ctx context.Context) (Table, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func validate(t Transaction) error {
	switch {
	case t.Type == "":
		return fmt.Errorf("%w: type is required", ErrInvalidTransaction)
	case t.Currency == "":
		return fmt.Errorf("%w: currency is required", ErrInvalidTransaction)
	case t.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	case t.ExchangeRate.IsNegative():
		return fmt.Errorf("%w: exchange rate must not be negative", ErrInvalidTransaction)
	}
	return nil
}

// withDefaults dates an undated transaction today, sets a missing exchange rate to 1 and
// derives a missing VND amount from it. A VND amount supplied by the caller is kept as is.
func (s *ServiceImpl) withDefaults(t Transaction) Transaction {
	if t.Date.IsZero() {
		t.Date = utils.Today(s.clock)
	}
	if t.ExchangeRate.IsZero() {
		t.ExchangeRate = decimal.NewFromInt(1)
	}
	if t.VndAmount.IsZero() {
		t.VndAmount = t.Amount.Mul(t.ExchangeRate)
	}
	return t
}

func (s *ServiceImpl) Save(ctx context.Context, transaction Transaction) (Transaction, error) {
	if err := validate(transaction); err != nil {
		return Transaction{}, err
	}
	id, err := s.repo.Save(ctx, s.withDefaults(transaction))
	if err != nil {
		return Transaction{}, err
	}
	return s.repo.GetById(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, id int, transaction Transaction) (bool, error) {
	if err := validate(transaction); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, id, s.withDefaults(transaction))
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Transaction, error) {
	return s.repo.GetById(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	if filter.IsEmpty() {
		return s.repo.GetAll(ctx)
	}
	return s.repo.GetFiltered(ctx, filter)
}

func (s *ServiceImpl) Export(ctx context.Context) (Table, error) {
	return s.repo.ExportAll(ctx)
}
