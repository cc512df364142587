package project

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

func sampleProject(name string) Project {
	return Project{
		Name:                    name,
		UpfrontPayment:          10000,
		MonthlyMaintenance:      500,
		MaintenanceMonths:       12,
		OtherRevenue:            250,
		TargetMargin:            30,
		FreelancerAllocation:    50,
		InternalStaffAllocation: 20,
		TechInfraAllocation:     15,
		AdminAllocation:         15,
	}
}

func TestRepositoryImpl_Save(t *testing.T) {
	t.Run("should store a project and assign an id", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)

		// when
		id, err := repo.Save(ctx, sampleProject("Website"))

		// then
		require.NoError(t, err)
		assert.Positive(t, id)
		stored, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Website", stored.Name)
		assert.Equal(t, 12, stored.MaintenanceMonths)
		assert.InDelta(t, 500.0, stored.MonthlyMaintenance, 1e-9)
		assert.InDelta(t, 16250.0, stored.TotalRevenue(), 1e-9)
		assert.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("should store a split that does not sum to 100 as given", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		p := sampleProject("Odd split")
		p.FreelancerAllocation = 80

		id, err := repo.Save(ctx, p)
		require.NoError(t, err)

		stored, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 80.0, stored.FreelancerAllocation)
	})
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	t.Run("should return empty list when nothing is stored", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		projects, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})

	t.Run("should return newest project first", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		_, err := repo.Save(ctx, sampleProject("First"))
		require.NoError(t, err)
		_, err = repo.Save(ctx, sampleProject("Second"))
		require.NoError(t, err)

		// when
		projects, err := repo.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "Second", projects[0].Name)
		assert.Equal(t, "First", projects[1].Name)
	})
}

func TestRepositoryImpl_GetById(t *testing.T) {
	t.Run("should return not found for unknown id", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		_, err := repo.GetById(ctx, 999)

		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestRepositoryImpl_Update(t *testing.T) {
	t.Run("should overwrite all fields", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		id, err := repo.Save(ctx, sampleProject("Before"))
		require.NoError(t, err)
		changed := sampleProject("After")
		changed.UpfrontPayment = 20000
		changed.TargetMargin = 40

		// when
		updated, err := repo.Update(ctx, id, changed)

		// then
		require.NoError(t, err)
		assert.True(t, updated)
		stored, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "After", stored.Name)
		assert.Equal(t, 20000.0, stored.UpfrontPayment)
		assert.Equal(t, 40.0, stored.TargetMargin)
	})

	t.Run("should report false for unknown id", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		updated, err := repo.Update(ctx, 999, sampleProject("Ghost"))

		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	t.Run("should delete an existing project", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		id, err := repo.Save(ctx, sampleProject("Doomed"))
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, id)

		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = repo.GetById(ctx, id)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("should report false for unknown id", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		deleted, err := repo.Delete(ctx, 999)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
