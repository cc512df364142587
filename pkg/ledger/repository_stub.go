package ledger

import (
	"context"
	"slices"
	"sort"
	"time"
)

type RepositoryStub struct {
	nextId       int
	transactions map[int]Transaction
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{transactions: map[int]Transaction{}}
}

func (s *RepositoryStub) Save(ctx context.Context, transaction Transaction) (int, error) {
	s.nextId++
	transaction.Id = s.nextId
	transaction.CreatedAt = time.Date(2025, 1, 1, 0, 0, s.nextId, 0, time.UTC)
	s.transactions[transaction.Id] = transaction
	return transaction.Id, nil
}

func (s *RepositoryStub) Update(ctx context.Context, id int, transaction Transaction) (bool, error) {
	existing, exists := s.transactions[id]
	if !exists {
		return false, nil
	}
	transaction.Id = id
	transaction.CreatedAt = existing.CreatedAt
	s.transactions[id] = transaction
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.transactions[id]; !exists {
		return false, nil
	}
	delete(s.transactions, id)
	return true, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, id int) (Transaction, error) {
	if t, exists := s.transactions[id]; exists {
		return t, nil
	}
	return Transaction{}, ErrTransactionNotFound
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Transaction, error) {
	return s.GetFiltered(ctx, Filter{})
}

func (s *RepositoryStub) GetFiltered(ctx context.Context, filter Filter) ([]Transaction, error) {
	transactions := make([]Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if len(filter.Types) > 0 && !slices.Contains(filter.Types, t.Type) {
			continue
		}
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, t.Category) {
			continue
		}
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Id > transactions[j].Id
		}
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

func (s *RepositoryStub) ExportAll(ctx context.Context) (Table, error) {
	transactions, _ := s.GetAll(ctx)
	return toTable(transactions), nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.transactions = map[int]Transaction{}
}
