package allocation

type Category string

const (
	Freelancers   Category = "Freelancers"
	InternalStaff Category = "Internal Staff"
	TechInfra     Category = "Tech & Infrastructure"
	AdminMisc     Category = "Admin & Misc"
)

// Categories lists the fixed spending categories in display order.
var Categories = []Category{Freelancers, InternalStaff, TechInfra, AdminMisc}

// DefaultPercentages is the suggested split used when the client has not chosen one yet.
var DefaultPercentages = map[Category]float64{
	Freelancers:   50,
	InternalStaff: 20,
	TechInfra:     15,
	AdminMisc:     15,
}

// DefaultInternalDevPercent is the share of the internal staff budget suggested for the internal developer.
const DefaultInternalDevPercent = 70

type SubSplit struct {
	Name    string
	Percent float64
}

// TechInfraSplit and AdminSplit are fixed suggestions, not user input.
var TechInfraSplit = []SubSplit{
	{Name: "Cloud Hosting", Percent: 40},
	{Name: "Software Tools", Percent: 30},
	{Name: "Domain/Google Workspace", Percent: 15},
	{Name: "Misc Tech Costs", Percent: 15},
}

var AdminSplit = []SubSplit{
	{Name: "Accounting/Legal", Percent: 30},
	{Name: "Bank Fees", Percent: 20},
	{Name: "Contingency", Percent: 50},
}

type SubAllocation struct {
	Name    string
	Percent float64
	Amount  float64
}

type DeveloperShare struct {
	Name    string
	Percent float64
	Amount  float64
}

type ProfitSummary struct {
	Profit    float64
	MarginPct float64
}

// Inputs carries everything needed to compute a full Breakdown.
type Inputs struct {
	UpfrontPayment     float64
	MonthlyMaintenance float64
	MaintenanceMonths  int
	OtherRevenue       float64
	TargetMargin       float64
	Percentages        map[Category]float64
	// DeveloperCount is the number of freelance developers sharing the freelancer budget; 0 skips the split.
	DeveloperCount     int
	DeveloperPercents  []float64
	InternalDevPercent float64
}

type CategoryBreakdown struct {
	Category Category
	Percent  float64
	Amount   float64
	// RevenueShare and ExpenseShare are percentages of total revenue and of total expenses.
	RevenueShare  float64
	ExpenseShare  float64
	Subcategories []SubAllocation
}

type Breakdown struct {
	MaintenanceRevenue float64
	TotalRevenue       float64
	AvailableBudget    float64
	Categories         []CategoryBreakdown
	Developers         []DeveloperShare
	TotalExpenses      float64
	Summary            ProfitSummary
}
