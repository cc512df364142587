package payroll

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId      int
	freelancers map[int]Freelancer
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{freelancers: map[int]Freelancer{}}
}

func (s *RepositoryStub) Add(ctx context.Context, freelancer Freelancer) (int, error) {
	s.nextId++
	freelancer.Id = s.nextId
	s.freelancers[freelancer.Id] = freelancer
	return freelancer.Id, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Freelancer, error) {
	freelancers := make([]Freelancer, 0, len(s.freelancers))
	for _, f := range s.freelancers {
		freelancers = append(freelancers, f)
	}
	sort.Slice(freelancers, func(i, j int) bool {
		return freelancers[i].Id < freelancers[j].Id
	})
	return freelancers, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, id int) (Freelancer, error) {
	if f, exists := s.freelancers[id]; exists {
		return f, nil
	}
	return Freelancer{}, ErrFreelancerNotFound
}

func (s *RepositoryStub) Update(ctx context.Context, id int, freelancer Freelancer) (bool, error) {
	if _, exists := s.freelancers[id]; !exists {
		return false, nil
	}
	freelancer.Id = id
	s.freelancers[id] = freelancer
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.freelancers[id]; !exists {
		return false, nil
	}
	delete(s.freelancers, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.freelancers = map[int]Freelancer{}
}
