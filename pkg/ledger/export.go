package ledger

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Transactions"

func RenderCSV(table Table) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.Write(table.Header); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

// RenderXLSX writes the table to a single-sheet workbook, header on the first row.
func RenderXLSX(table Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := writeRow(f, 1, table.Header); err != nil {
		return nil, err
	}
	for i, row := range table.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetName, "G", "G", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("Error writing xlsx: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheetName, cell, &row)
}
