package payroll

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

var csvHeader = []string{"id", "name", "nationality", "gross_payment", "tax_rate", "tax_amount", "net_payment"}

// RenderCSV writes the payroll listing with the tax rate shown as a percentage.
func RenderCSV(freelancers []Freelancer) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.Write(csvHeader); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	for _, f := range freelancers {
		row := []string{
			strconv.Itoa(f.Id),
			f.Name,
			string(f.Nationality),
			formatMoney(f.GrossPayment),
			FormatTaxRate(f.TaxRate),
			formatMoney(f.TaxAmount),
			formatMoney(f.NetPayment),
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
