package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
)

// ErrBadHeader is returned when an import file lacks the required columns.
var ErrBadHeader = errors.New("report: csv header must contain name and quantity columns")

var exportHeader = []string{"id", "name", "quantity", "created_at"}

// MarshalItemsCSV renders a project's inventory listing as CSV.
func MarshalItemsCSV(items []*domain.InventoryItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("report.MarshalItemsCSV: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.ID.String(),
			item.Name,
			strconv.Itoa(item.Quantity),
			item.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("report.MarshalItemsCSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("report.MarshalItemsCSV: %w", err)
	}

	return buf.Bytes(), nil
}

// ParseItemsCSV reads an import file and builds items bound to the given
// project. The header row must name a "name" and a "quantity" column; column
// order is free and extra columns are ignored. Rows with a malformed quantity
// fail the whole import.
func ParseItemsCSV(r io.Reader, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("report.ParseItemsCSV: %w", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("report.ParseItemsCSV: read header: %w", err)
	}

	nameIdx, quantityIdx := -1, -1
	for i, col := range header {
		switch col {
		case "name":
			nameIdx = i
		case "quantity":
			quantityIdx = i
		}
	}
	if nameIdx < 0 || quantityIdx < 0 {
		return nil, fmt.Errorf("report.ParseItemsCSV: %w", ErrBadHeader)
	}

	var items []*domain.InventoryItem
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("report.ParseItemsCSV: line %d: %w", line, err)
		}

		quantity, err := strconv.Atoi(record[quantityIdx])
		if err != nil {
			return nil, fmt.Errorf("report.ParseItemsCSV: line %d: quantity %q: %w", line, record[quantityIdx], err)
		}

		item, err := domain.NewInventoryItem(tenantID, projectID, record[nameIdx], quantity)
		if err != nil {
			return nil, fmt.Errorf("report.ParseItemsCSV: line %d: %w", line, err)
		}
		items = append(items, item)
	}

	return items, nil
}
