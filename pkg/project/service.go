package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/bizcalc/pkg/allocation"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyName = errors.New("project name must not be empty")

type Service interface {
	Save(ctx context.Context, project Project) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetById(ctx context.Context, id int) (Project, error)
	Update(ctx context.Context, id int, project Project) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	Breakdown(ctx context.Context, id int) (allocation.Breakdown, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// Validate checks a project before it is stored. The repository accepts anything the
// columns accept, so this is the only place the allocation split is enforced.
func Validate(project Project) error {
	if project.Name == "" {
		return ErrEmptyName
	}
	return allocation.ValidateInputs(project.Inputs())
}

func (s *ServiceImpl) Save(ctx context.Context, project Project) (Project, error) {
	if err := Validate(project); err != nil {
		return Project{}, err
	}
	id, err := s.repo.Save(ctx, project)
	if err != nil {
		return Project{}, err
	}
	return s.repo.GetById(ctx, id)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Project, error) {
	return s.repo.GetById(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, id int, project Project) (bool, error) {
	if err := Validate(project); err != nil {
		return false, err
	}
	updated, err := s.repo.Update(ctx, id, project)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Debugf("project %d not updated, it does not exist", id)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Breakdown recomputes the cost allocation of a saved project.
func (s *ServiceImpl) Breakdown(ctx context.Context, id int) (allocation.Breakdown, error) {
	project, err := s.repo.GetById(ctx, id)
	if err != nil {
		return allocation.Breakdown{}, fmt.Errorf("failed to load project %d: %w", id, err)
	}
	return allocation.Compute(project.Inputs()), nil
}
