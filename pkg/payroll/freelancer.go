package payroll

// Nationality selects the tax bracket of a freelancer.
type Nationality string

const (
	Vietnamese Nationality = "Vietnamese"
	Foreign    Nationality = "Foreign"
)

// Freelancer is one payroll record. The tax fields are computed when the record is written
// and stored as they were at that time.
type Freelancer struct {
	Id           int
	Name         string
	Nationality  Nationality
	GrossPayment float64
	TaxRate      float64
	TaxAmount    float64
	NetPayment   float64
}
