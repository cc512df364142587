package payroll

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type FreelancerDTO struct {
	Id           int     `json:"id"`
	Name         string  `json:"name"`
	Nationality  string  `json:"nationality"`
	GrossPayment float64 `json:"grossPayment"`
	TaxRate      float64 `json:"taxRate"`
	TaxRateLabel string  `json:"taxRateLabel"`
	TaxAmount    float64 `json:"taxAmount"`
	NetPayment   float64 `json:"netPayment"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListFreelancers godoc
// @Summary List freelancers on the payroll
// @Tags Payroll
// @Produce json
// @Success 200 {array} FreelancerDTO
// @Router /api/freelancer [get]
func (handler *Handler) ListFreelancers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	freelancers, err := handler.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	freelancersDTO := make([]FreelancerDTO, 0, len(freelancers))
	for _, f := range freelancers {
		freelancersDTO = append(freelancersDTO, FreelancerToDTO(f))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(freelancersDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AddFreelancer godoc
// @Summary Add a freelancer
// @Description Tax rate, tax amount and net payment are computed from nationality and gross payment
// @Tags Payroll
// @Accept json
// @Produce json
// @Param freelancer body FreelancerDTO true "Freelancer"
// @Success 201 {object} FreelancerDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/freelancer [post]
func (handler *Handler) AddFreelancer(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding freelancer")
	w.Header().Set("Content-Type", "application/json")
	var freelancerDTO FreelancerDTO
	if err := json.NewDecoder(r.Body).Decode(&freelancerDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Add(r.Context(), DTOToFreelancer(freelancerDTO))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(FreelancerToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetFreelancer godoc
// @Summary Get a freelancer by ID
// @Tags Payroll
// @Produce json
// @Param freelancerId path int true "Freelancer ID"
// @Success 200 {object} FreelancerDTO
// @Failure 404 {string} string "Freelancer Not Found"
// @Router /api/freelancer/{freelancerId} [get]
func (handler *Handler) GetFreelancer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	freelancerId, err := strconv.Atoi(mux.Vars(r)["freelancerId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	freelancer, err := handler.service.GetById(r.Context(), freelancerId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(FreelancerToDTO(freelancer)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateFreelancer godoc
// @Summary Update a freelancer
// @Description Tax fields are recomputed from the new nationality and gross payment
// @Tags Payroll
// @Accept json
// @Produce json
// @Param freelancerId path int true "Freelancer ID"
// @Param freelancer body FreelancerDTO true "Freelancer"
// @Success 200 {object} FreelancerDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Freelancer Not Found"
// @Router /api/freelancer/{freelancerId} [put]
func (handler *Handler) UpdateFreelancer(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating freelancer")
	w.Header().Set("Content-Type", "application/json")
	freelancerId, err := strconv.Atoi(mux.Vars(r)["freelancerId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var freelancerDTO FreelancerDTO
	if err := json.NewDecoder(r.Body).Decode(&freelancerDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), freelancerId, DTOToFreelancer(freelancerDTO))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !updated {
		http.Error(w, ErrFreelancerNotFound.Error(), http.StatusNotFound)
		return
	}

	freelancer, err := handler.service.GetById(r.Context(), freelancerId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(FreelancerToDTO(freelancer)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteFreelancer godoc
// @Summary Remove a freelancer from the payroll
// @Tags Payroll
// @Param freelancerId path int true "Freelancer ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Freelancer Not Found"
// @Router /api/freelancer/{freelancerId} [delete]
func (handler *Handler) DeleteFreelancer(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting freelancer")
	freelancerId, err := strconv.Atoi(mux.Vars(r)["freelancerId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := handler.service.Delete(r.Context(), freelancerId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, ErrFreelancerNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportFreelancers godoc
// @Summary Download the payroll listing as CSV
// @Tags Payroll
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Router /api/freelancer/export [get]
func (handler *Handler) ExportFreelancers(w http.ResponseWriter, r *http.Request) {
	freelancers, err := handler.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	csv, err := RenderCSV(freelancers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="freelancer_payroll.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write payroll export: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrFreelancerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrNegativePayment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func FreelancerToDTO(f Freelancer) FreelancerDTO {
	return FreelancerDTO{
		Id:           f.Id,
		Name:         f.Name,
		Nationality:  string(f.Nationality),
		GrossPayment: f.GrossPayment,
		TaxRate:      f.TaxRate,
		TaxRateLabel: FormatTaxRate(f.TaxRate),
		TaxAmount:    f.TaxAmount,
		NetPayment:   f.NetPayment,
	}
}

// DTOToFreelancer ignores the tax fields of the DTO, they are always derived.
func DTOToFreelancer(dto FreelancerDTO) Freelancer {
	return Freelancer{
		Id:           dto.Id,
		Name:         dto.Name,
		Nationality:  Nationality(dto.Nationality),
		GrossPayment: dto.GrossPayment,
	}
}
