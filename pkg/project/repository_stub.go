package project

import (
	"context"
	"sort"
	"time"
)

type RepositoryStub struct {
	nextId   int
	projects map[int]Project
	now      time.Time
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{projects: map[int]Project{}, now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (s *RepositoryStub) Save(ctx context.Context, project Project) (int, error) {
	s.nextId++
	s.now = s.now.Add(time.Minute)
	project.Id = s.nextId
	project.CreatedAt = s.now
	s.projects[project.Id] = project
	return project.Id, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Project, error) {
	projects := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, id int) (Project, error) {
	if p, exists := s.projects[id]; exists {
		return p, nil
	}
	return Project{}, ErrProjectNotFound
}

func (s *RepositoryStub) Update(ctx context.Context, id int, project Project) (bool, error) {
	existing, exists := s.projects[id]
	if !exists {
		return false, nil
	}
	project.Id = id
	project.CreatedAt = existing.CreatedAt
	s.projects[id] = project
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.projects[id]; !exists {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.projects = map[int]Project{}
}
