package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/bizcalc/pkg/allocation"
	log "github.com/sirupsen/logrus"
)

type ProjectDTO struct {
	Id                      int       `json:"id"`
	Name                    string    `json:"name"`
	UpfrontPayment          float64   `json:"upfrontPayment"`
	MonthlyMaintenance      float64   `json:"monthlyMaintenance"`
	MaintenanceMonths       int       `json:"maintenanceMonths"`
	OtherRevenue            float64   `json:"otherRevenue"`
	TargetMargin            float64   `json:"targetMargin"`
	FreelancerAllocation    float64   `json:"freelancerAllocation"`
	InternalStaffAllocation float64   `json:"internalStaffAllocation"`
	TechInfraAllocation     float64   `json:"techInfraAllocation"`
	AdminAllocation         float64   `json:"adminAllocation"`
	TotalRevenue            float64   `json:"totalRevenue"`
	CreatedAt               time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListProjects godoc
// @Summary List saved project calculations
// @Description Newest first
// @Tags Project
// @Produce json
// @Success 200 {array} ProjectDTO
// @Router /api/project [get]
func (handler *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing projects")
	w.Header().Set("Content-Type", "application/json")
	projects, err := handler.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	projectsDTO := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		projectsDTO = append(projectsDTO, ProjectToDTO(p))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(projectsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateProject godoc
// @Summary Save a project calculation
// @Tags Project
// @Accept json
// @Produce json
// @Param project body ProjectDTO true "Project"
// @Success 201 {object} ProjectDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/project [post]
func (handler *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating project")
	w.Header().Set("Content-Type", "application/json")
	var projectDTO ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&projectDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Save(r.Context(), DTOToProject(projectDTO))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetProject godoc
// @Summary Get a project calculation by ID
// @Tags Project
// @Produce json
// @Param projectId path int true "Project ID"
// @Success 200 {object} ProjectDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Project Not Found"
// @Router /api/project/{projectId} [get]
func (handler *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := handler.service.GetById(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateProject godoc
// @Summary Overwrite a project calculation
// @Tags Project
// @Accept json
// @Produce json
// @Param projectId path int true "Project ID"
// @Param project body ProjectDTO true "Project"
// @Success 200 {object} ProjectDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Project Not Found"
// @Router /api/project/{projectId} [put]
func (handler *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating project")
	w.Header().Set("Content-Type", "application/json")
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var projectDTO ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&projectDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), projectId, DTOToProject(projectDTO))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !updated {
		http.Error(w, ErrProjectNotFound.Error(), http.StatusNotFound)
		return
	}

	project, err := handler.service.GetById(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteProject godoc
// @Summary Delete a project calculation
// @Tags Project
// @Param projectId path int true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Project Not Found"
// @Router /api/project/{projectId} [delete]
func (handler *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting project")
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := handler.service.Delete(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, ErrProjectNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBreakdown godoc
// @Summary Cost allocation of a saved project
// @Tags Project
// @Produce json
// @Param projectId path int true "Project ID"
// @Success 200 {object} allocation.BreakdownDTO
// @Failure 404 {string} string "Project Not Found"
// @Router /api/project/{projectId}/breakdown [get]
func (handler *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	breakdown, err := handler.service.Breakdown(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(allocation.BreakdownToDTO(breakdown)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyName),
		errors.Is(err, allocation.ErrAllocationNot100),
		errors.Is(err, allocation.ErrPercentOutOfRange),
		errors.Is(err, allocation.ErrNegativeInput),
		errors.Is(err, allocation.ErrMarginOutOfRange),
		errors.Is(err, allocation.ErrDeveloperCountOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ProjectToDTO(p Project) ProjectDTO {
	return ProjectDTO{
		Id:                      p.Id,
		Name:                    p.Name,
		UpfrontPayment:          p.UpfrontPayment,
		MonthlyMaintenance:      p.MonthlyMaintenance,
		MaintenanceMonths:       p.MaintenanceMonths,
		OtherRevenue:            p.OtherRevenue,
		TargetMargin:            p.TargetMargin,
		FreelancerAllocation:    p.FreelancerAllocation,
		InternalStaffAllocation: p.InternalStaffAllocation,
		TechInfraAllocation:     p.TechInfraAllocation,
		AdminAllocation:         p.AdminAllocation,
		TotalRevenue:            p.TotalRevenue(),
		CreatedAt:               p.CreatedAt,
	}
}

func DTOToProject(dto ProjectDTO) Project {
	return Project{
		Id:                      dto.Id,
		Name:                    dto.Name,
		UpfrontPayment:          dto.UpfrontPayment,
		MonthlyMaintenance:      dto.MonthlyMaintenance,
		MaintenanceMonths:       dto.MaintenanceMonths,
		OtherRevenue:            dto.OtherRevenue,
		TargetMargin:            dto.TargetMargin,
		FreelancerAllocation:    dto.FreelancerAllocation,
		InternalStaffAllocation: dto.InternalStaffAllocation,
		TechInfraAllocation:     dto.TechInfraAllocation,
		AdminAllocation:         dto.AdminAllocation,
	}
}
