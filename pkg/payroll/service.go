package payroll

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

var ErrEmptyName = errors.New("freelancer name must not be empty")
var ErrNegativePayment = errors.New("gross payment must not be negative")

type Service interface {
	Add(ctx context.Context, freelancer Freelancer) (Freelancer, error)
	GetAll(ctx context.Context) ([]Freelancer, error)
	GetById(ctx context.Context, id int) (Freelancer, error)
	Update(ctx context.Context, id int, freelancer Freelancer) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ServiceImpl derives the tax fields from the tax table on every write.
type ServiceImpl struct {
	repo     Repository
	taxTable TaxTable
}

func NewService(repo Repository, taxTable TaxTable) *ServiceImpl {
	return &ServiceImpl{repo: repo, taxTable: taxTable}
}

func validate(freelancer Freelancer) error {
	if freelancer.Name == "" {
		return ErrEmptyName
	}
	if freelancer.GrossPayment < 0 {
		return ErrNegativePayment
	}
	return nil
}

func (s *ServiceImpl) Add(ctx context.Context, freelancer Freelancer) (Freelancer, error) {
	if err := validate(freelancer); err != nil {
		return Freelancer{}, err
	}
	freelancer = s.taxTable.Apply(freelancer)
	id, err := s.repo.Add(ctx, freelancer)
	if err != nil {
		return Freelancer{}, err
	}
	freelancer.Id = id
	log.Debugf("freelancer %d taxed at %s", id, FormatTaxRate(freelancer.TaxRate))
	return freelancer, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Freelancer, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Freelancer, error) {
	return s.repo.GetById(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, id int, freelancer Freelancer) (bool, error) {
	if err := validate(freelancer); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, id, s.taxTable.Apply(freelancer))
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
