package allocation

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type InputsDTO struct {
	UpfrontPayment     float64         `json:"upfrontPayment"`
	MonthlyMaintenance float64         `json:"monthlyMaintenance"`
	MaintenanceMonths  int             `json:"maintenanceMonths"`
	OtherRevenue       float64         `json:"otherRevenue"`
	TargetMargin       float64         `json:"targetMargin"`
	Allocation         *PercentagesDTO `json:"allocation,omitempty"`
	DeveloperCount     int             `json:"developerCount"`
	DeveloperPercents  []float64       `json:"developerPercents,omitempty"`
	InternalDevPercent *float64        `json:"internalDevPercent,omitempty"`
}

type PercentagesDTO struct {
	Freelancers   float64 `json:"freelancers"`
	InternalStaff float64 `json:"internalStaff"`
	TechInfra     float64 `json:"techInfra"`
	Admin         float64 `json:"admin"`
}

type SubAllocationDTO struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Amount  float64 `json:"amount"`
}

type CategoryDTO struct {
	Category      string             `json:"category"`
	Percent       float64            `json:"percent"`
	Amount        float64            `json:"amount"`
	RevenueShare  float64            `json:"revenueShare"`
	ExpenseShare  float64            `json:"expenseShare"`
	Subcategories []SubAllocationDTO `json:"subcategories,omitempty"`
}

type BreakdownDTO struct {
	MaintenanceRevenue float64            `json:"maintenanceRevenue"`
	TotalRevenue       float64            `json:"totalRevenue"`
	AvailableBudget    float64            `json:"availableBudget"`
	Categories         []CategoryDTO      `json:"categories"`
	Developers         []SubAllocationDTO `json:"developers,omitempty"`
	TotalExpenses      float64            `json:"totalExpenses"`
	Profit             float64            `json:"profit"`
	MarginPct          float64            `json:"marginPct"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ComputeBreakdown godoc
// @Summary Compute a cost allocation
// @Description Turn revenue inputs, a target margin and category percentages into a budget breakdown
// @Tags Allocation
// @Accept json
// @Produce json
// @Param inputs body InputsDTO true "Calculation inputs"
// @Success 200 {object} BreakdownDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/allocation/breakdown [post]
func (handler *Handler) ComputeBreakdown(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing allocation breakdown")
	w.Header().Set("Content-Type", "application/json")
	var inputsDTO InputsDTO
	if err := json.NewDecoder(r.Body).Decode(&inputsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inputs := DTOToInputs(inputsDTO)
	if err := ValidateInputs(inputs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	breakdownDTO := BreakdownToDTO(Compute(inputs))
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(breakdownDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func DTOToInputs(dto InputsDTO) Inputs {
	pcts := DefaultPercentages
	if dto.Allocation != nil {
		pcts = dto.Allocation.ToMap()
	}
	internalDev := float64(DefaultInternalDevPercent)
	if dto.InternalDevPercent != nil {
		internalDev = *dto.InternalDevPercent
	}
	return Inputs{
		UpfrontPayment:     dto.UpfrontPayment,
		MonthlyMaintenance: dto.MonthlyMaintenance,
		MaintenanceMonths:  dto.MaintenanceMonths,
		OtherRevenue:       dto.OtherRevenue,
		TargetMargin:       dto.TargetMargin,
		Percentages:        pcts,
		DeveloperCount:     dto.DeveloperCount,
		DeveloperPercents:  dto.DeveloperPercents,
		InternalDevPercent: internalDev,
	}
}

func (p PercentagesDTO) ToMap() map[Category]float64 {
	return map[Category]float64{
		Freelancers:   p.Freelancers,
		InternalStaff: p.InternalStaff,
		TechInfra:     p.TechInfra,
		AdminMisc:     p.Admin,
	}
}

func BreakdownToDTO(b Breakdown) BreakdownDTO {
	categories := make([]CategoryDTO, 0, len(b.Categories))
	for _, c := range b.Categories {
		subs := make([]SubAllocationDTO, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subs = append(subs, SubAllocationDTO(s))
		}
		categories = append(categories, CategoryDTO{
			Category:      string(c.Category),
			Percent:       c.Percent,
			Amount:        c.Amount,
			RevenueShare:  c.RevenueShare,
			ExpenseShare:  c.ExpenseShare,
			Subcategories: subs,
		})
	}
	developers := make([]SubAllocationDTO, 0, len(b.Developers))
	for _, d := range b.Developers {
		developers = append(developers, SubAllocationDTO(d))
	}
	return BreakdownDTO{
		MaintenanceRevenue: b.MaintenanceRevenue,
		TotalRevenue:       b.TotalRevenue,
		AvailableBudget:    b.AvailableBudget,
		Categories:         categories,
		Developers:         developers,
		TotalExpenses:      b.TotalExpenses,
		Profit:             b.Summary.Profit,
		MarginPct:          b.Summary.MarginPct,
	}
}
