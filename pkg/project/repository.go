package project

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/bizcalc/internal/database"
	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	Save(ctx context.Context, project Project) (int, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetById(ctx context.Context, id int) (Project, error)
	Update(ctx context.Context, id int, project Project) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, name, upfront_payment, monthly_maintenance, maintenance_months, other_revenue,
       target_margin, freelancer_allocation, internal_staff_allocation, tech_infra_allocation,
       admin_allocation, created_at`

func (r *RepositoryImpl) Save(ctx context.Context, project Project) (int, error) {
	query := `INSERT INTO projects (
                    name,
                    upfront_payment,
                    monthly_maintenance,
                    maintenance_months,
                    other_revenue,
                    target_margin,
                    freelancer_allocation,
                    internal_staff_allocation,
                    tech_infra_allocation,
                    admin_allocation
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	var lastInsertID int
	err := r.db.QueryRow(ctx, query,
		project.Name,
		project.UpfrontPayment,
		project.MonthlyMaintenance,
		project.MaintenanceMonths,
		project.OtherRevenue,
		project.TargetMargin,
		project.FreelancerAllocation,
		project.InternalStaffAllocation,
		project.TechInfraAllocation,
		project.AdminAllocation,
	).Scan(&lastInsertID)
	if err != nil {
		return 0, database.Wrap("save project", err)
	}

	log.Debugf("project %d saved", lastInsertID)
	return lastInsertID, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Project, error) {
	query := `SELECT ` + selectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, database.Wrap("list projects", err)
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, database.Wrap("scan project", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate projects", err)
	}
	return projects, nil
}

func (r *RepositoryImpl) GetById(ctx context.Context, id int) (Project, error) {
	query := `SELECT ` + selectColumns + ` FROM projects WHERE id = $1`
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, database.Wrap("get project", err)
	}
	return project, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id int, project Project) (bool, error) {
	query := `UPDATE projects SET
                  name = $1,
                  upfront_payment = $2,
                  monthly_maintenance = $3,
                  maintenance_months = $4,
                  other_revenue = $5,
                  target_margin = $6,
                  freelancer_allocation = $7,
                  internal_staff_allocation = $8,
                  tech_infra_allocation = $9,
                  admin_allocation = $10
              WHERE id = $11`
	result, err := r.db.Exec(ctx, query,
		project.Name,
		project.UpfrontPayment,
		project.MonthlyMaintenance,
		project.MaintenanceMonths,
		project.OtherRevenue,
		project.TargetMargin,
		project.FreelancerAllocation,
		project.InternalStaffAllocation,
		project.TechInfraAllocation,
		project.AdminAllocation,
		id,
	)
	if err != nil {
		return false, database.Wrap("update project", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return false, database.Wrap("delete project", err)
	}
	return result.RowsAffected() == 1, nil
}

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(
		&p.Id,
		&p.Name,
		&p.UpfrontPayment,
		&p.MonthlyMaintenance,
		&p.MaintenanceMonths,
		&p.OtherRevenue,
		&p.TargetMargin,
		&p.FreelancerAllocation,
		&p.InternalStaffAllocation,
		&p.TechInfraAllocation,
		&p.AdminAllocation,
		&p.CreatedAt,
	)
	return p, err
}
