package allocation

import (
	"errors"
	"fmt"
	"math"
)

var ErrAllocationNot100 = errors.New("allocation percentages must sum to 100")
var ErrPercentOutOfRange = errors.New("allocation percentage out of range")
var ErrNegativeInput = errors.New("revenue inputs must not be negative")
var ErrMarginOutOfRange = errors.New("target margin must be between 0 and 90")
var ErrDeveloperCountOutOfRange = errors.New("developer count must be between 0 and 10")

const percentTolerance = 1e-9

const (
	minDeveloperPercent = 5
	maxDeveloperPercent = 90
	maxDeveloperCount   = 10
)

func ComputeRevenue(upfront, monthlyFee float64, months int, other float64) float64 {
	return upfront + monthlyFee*float64(months) + other
}

// ComputeAvailableBudget returns what is left for costs once the target margin is kept aside.
func ComputeAvailableBudget(totalRevenue, targetMarginPct float64) float64 {
	if totalRevenue <= 0 {
		return 0
	}
	return totalRevenue * (1 - targetMarginPct/100)
}

// AllocateBudget multiplies the budget by each category percentage.
// Percentages are not normalised: a map summing to 200 allocates twice the budget.
func AllocateBudget(budget float64, pcts map[Category]float64) map[Category]float64 {
	amounts := make(map[Category]float64, len(pcts))
	for category, pct := range pcts {
		amounts[category] = budget * (pct / 100)
	}
	return amounts
}

func AllocateSubcategories(categoryAmount float64, split []SubSplit) []SubAllocation {
	result := make([]SubAllocation, 0, len(split))
	for _, s := range split {
		result = append(result, SubAllocation{
			Name:    s.Name,
			Percent: s.Percent,
			Amount:  categoryAmount * (s.Percent / 100),
		})
	}
	return result
}

// SplitInternalStaff divides the internal staff budget between the internal developer and sales.
func SplitInternalStaff(categoryAmount, internalDevPct float64) []SubAllocation {
	return AllocateSubcategories(categoryAmount, []SubSplit{
		{Name: "Internal Developer", Percent: internalDevPct},
		{Name: "Sales Person", Percent: 100 - internalDevPct},
	})
}

// EvenPercent is the per-developer percentage suggested before the user adjusts anything.
func EvenPercent(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Max(minDeveloperPercent, math.Floor(100/float64(n)))
}

// SplitEvenlyWithRemainder distributes total across n developers. The first n-1 get the
// given percentages (clamped to the slider range, missing ones default to EvenPercent),
// the last one gets whatever is left. An over-allocated split leaves a negative remainder.
func SplitEvenlyWithRemainder(total float64, n int, userPercents []float64) []DeveloperShare {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []DeveloperShare{{Name: developerName(1), Percent: 100, Amount: total}}
	}

	shares := make([]DeveloperShare, 0, n)
	remaining := total
	allocatedPct := 0.0
	for i := 1; i < n; i++ {
		pct := EvenPercent(n)
		if i-1 < len(userPercents) {
			pct = userPercents[i-1]
		}
		maxPct := float64(maxDeveloperPercent)
		if i == n-1 {
			maxPct = 100
		}
		pct = clamp(pct, minDeveloperPercent, maxPct)

		amount := total * (pct / 100)
		remaining -= amount
		allocatedPct += pct
		shares = append(shares, DeveloperShare{Name: developerName(i), Percent: pct, Amount: amount})
	}
	shares = append(shares, DeveloperShare{Name: developerName(n), Percent: 100 - allocatedPct, Amount: remaining})
	return shares
}

func ComputeProfitSummary(totalRevenue, totalExpenses float64) ProfitSummary {
	profit := totalRevenue - totalExpenses
	return ProfitSummary{Profit: profit, MarginPct: percentOf(profit, totalRevenue)}
}

// ValidatePercentages checks the category split without touching it.
func ValidatePercentages(pcts map[Category]float64) error {
	total := 0.0
	for _, category := range Categories {
		pct := pcts[category]
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: %s is %g", ErrPercentOutOfRange, category, pct)
		}
		total += pct
	}
	if math.Abs(total-100) > percentTolerance {
		return fmt.Errorf("%w: got %g", ErrAllocationNot100, total)
	}
	return nil
}

// ValidateInputs rejects inputs outside the documented domain. It never adjusts them.
func ValidateInputs(in Inputs) error {
	if in.UpfrontPayment < 0 || in.MonthlyMaintenance < 0 || in.MaintenanceMonths < 0 || in.OtherRevenue < 0 {
		return ErrNegativeInput
	}
	if in.TargetMargin < 0 || in.TargetMargin > 90 {
		return ErrMarginOutOfRange
	}
	if in.DeveloperCount < 0 || in.DeveloperCount > maxDeveloperCount {
		return fmt.Errorf("%w: got %d", ErrDeveloperCountOutOfRange, in.DeveloperCount)
	}
	return ValidatePercentages(in.Percentages)
}

// Compute runs the whole pipeline from revenue inputs to the profit summary.
func Compute(in Inputs) Breakdown {
	maintenance := in.MonthlyMaintenance * float64(in.MaintenanceMonths)
	revenue := ComputeRevenue(in.UpfrontPayment, in.MonthlyMaintenance, in.MaintenanceMonths, in.OtherRevenue)
	budget := ComputeAvailableBudget(revenue, in.TargetMargin)
	amounts := AllocateBudget(budget, in.Percentages)

	totalExpenses := 0.0
	for _, category := range Categories {
		totalExpenses += amounts[category]
	}

	categories := make([]CategoryBreakdown, 0, len(Categories))
	for _, category := range Categories {
		amount := amounts[category]
		cb := CategoryBreakdown{
			Category:     category,
			Percent:      in.Percentages[category],
			Amount:       amount,
			RevenueShare: percentOf(amount, revenue),
			ExpenseShare: percentOf(amount, totalExpenses),
		}
		switch category {
		case InternalStaff:
			cb.Subcategories = SplitInternalStaff(amount, in.InternalDevPercent)
		case TechInfra:
			cb.Subcategories = AllocateSubcategories(amount, TechInfraSplit)
		case AdminMisc:
			cb.Subcategories = AllocateSubcategories(amount, AdminSplit)
		}
		categories = append(categories, cb)
	}

	return Breakdown{
		MaintenanceRevenue: maintenance,
		TotalRevenue:       revenue,
		AvailableBudget:    budget,
		Categories:         categories,
		Developers:         SplitEvenlyWithRemainder(amounts[Freelancers], in.DeveloperCount, in.DeveloperPercents),
		TotalExpenses:      totalExpenses,
		Summary:            ComputeProfitSummary(revenue, totalExpenses),
	}
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func developerName(i int) string {
	return fmt.Sprintf("Developer %d", i)
}
