package ledger

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Transaction is one bookkeeping entry. VndAmount is Amount converted with ExchangeRate.
type Transaction struct {
	Id           int
	Date         time.Time
	Type         string
	Amount       decimal.Decimal
	Currency     string
	VndAmount    decimal.Decimal
	Description  string
	Category     string
	Reference    string
	ExchangeRate decimal.Decimal
	CreatedAt    time.Time
}

// Filter restricts a listing. An empty slice leaves that dimension unrestricted;
// when both are set a row must match both.
type Filter struct {
	Types      []string
	Categories []string
}

func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Categories) == 0
}

// Table is a flat snapshot of the ledger ready to be written to a report.
type Table struct {
	Header []string
	Rows   [][]string
}

var exportHeader = []string{
	"id", "date", "type", "amount", "currency", "vnd_amount",
	"description", "category", "reference", "exchange_rate", "created_at",
}

func toTable(transactions []Transaction) Table {
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			strconv.Itoa(t.Id),
			t.Date.Format(DateLayout),
			t.Type,
			t.Amount.String(),
			t.Currency,
			t.VndAmount.String(),
			t.Description,
			t.Category,
			t.Reference,
			t.ExchangeRate.String(),
			t.CreatedAt.Format(time.RFC3339),
		})
	}
	return Table{Header: exportHeader, Rows: rows}
}
