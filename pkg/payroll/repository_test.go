package payroll

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/bizcalc/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository
}

func TestRepositoryImpl_Add(t *testing.T) {
	t.Run("should store tax fields as given", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		freelancer := Freelancer{Name: "Lan", Nationality: Vietnamese, GrossPayment: 1000, TaxRate: 0.33, TaxAmount: 1, NetPayment: 2}

		// when
		id, err := repo.Add(ctx, freelancer)

		// then
		require.NoError(t, err)
		stored, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		freelancer.Id = id
		assert.Equal(t, freelancer, stored)
	})
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	t.Run("should return empty list", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		freelancers, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, freelancers)
		assert.Empty(t, freelancers)
	})

	t.Run("should return all freelancers", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		_, err := repo.Add(ctx, Freelancer{Name: "A", Nationality: Vietnamese})
		require.NoError(t, err)
		_, err = repo.Add(ctx, Freelancer{Name: "B", Nationality: Foreign})
		require.NoError(t, err)

		freelancers, err := repo.GetAll(ctx)

		require.NoError(t, err)
		require.Len(t, freelancers, 2)
		assert.Equal(t, "A", freelancers[0].Name)
		assert.Equal(t, Foreign, freelancers[1].Nationality)
	})
}

func TestRepositoryImpl_GetById(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	_, err := repo.GetById(ctx, 404)

	assert.ErrorIs(t, err, ErrFreelancerNotFound)
}

func TestRepositoryImpl_Update(t *testing.T) {
	t.Run("should overwrite record", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		id, err := repo.Add(ctx, Freelancer{Name: "Old", Nationality: Vietnamese, GrossPayment: 10, TaxRate: 0.1, TaxAmount: 1, NetPayment: 9})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, id, Freelancer{Name: "New", Nationality: Foreign, GrossPayment: 20, TaxRate: 0.2, TaxAmount: 4, NetPayment: 16})

		require.NoError(t, err)
		assert.True(t, updated)
		stored, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, Freelancer{Id: id, Name: "New", Nationality: Foreign, GrossPayment: 20, TaxRate: 0.2, TaxAmount: 4, NetPayment: 16}, stored)
	})

	t.Run("should leave store unchanged for unknown id", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		id, err := repo.Add(ctx, Freelancer{Name: "Keep", Nationality: Vietnamese})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, id+1, Freelancer{Name: "Other", Nationality: Foreign})

		require.NoError(t, err)
		assert.False(t, updated)
		stored, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Keep", stored.Name)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	ctx, repo := setupTestRepository(t)
	id, err := repo.Add(ctx, Freelancer{Name: "Bye", Nationality: Foreign})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
