package project

import (
	"time"

	"github.com/klokku/bizcalc/pkg/allocation"
)

// Project is a saved budgeting scenario. Only the inputs are stored; the breakdown is recomputed.
type Project struct {
	Id                 int
	Name               string
	UpfrontPayment     float64
	MonthlyMaintenance float64
	MaintenanceMonths  int
	OtherRevenue       float64
	// TargetMargin is the desired profit as a percentage of total revenue (0-90).
	TargetMargin            float64
	FreelancerAllocation    float64
	InternalStaffAllocation float64
	TechInfraAllocation     float64
	AdminAllocation         float64
	CreatedAt               time.Time
}

func (p Project) Percentages() map[allocation.Category]float64 {
	return map[allocation.Category]float64{
		allocation.Freelancers:   p.FreelancerAllocation,
		allocation.InternalStaff: p.InternalStaffAllocation,
		allocation.TechInfra:     p.TechInfraAllocation,
		allocation.AdminMisc:     p.AdminAllocation,
	}
}

func (p Project) TotalRevenue() float64 {
	return allocation.ComputeRevenue(p.UpfrontPayment, p.MonthlyMaintenance, p.MaintenanceMonths, p.OtherRevenue)
}

func (p Project) Inputs() allocation.Inputs {
	return allocation.Inputs{
		UpfrontPayment:     p.UpfrontPayment,
		MonthlyMaintenance: p.MonthlyMaintenance,
		MaintenanceMonths:  p.MaintenanceMonths,
		OtherRevenue:       p.OtherRevenue,
		TargetMargin:       p.TargetMargin,
		Percentages:        p.Percentages(),
		InternalDevPercent: allocation.DefaultInternalDevPercent,
	}
}
