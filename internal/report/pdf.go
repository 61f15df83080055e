package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/stocktrail/stocktrail/internal/domain"
)

// DateRange bounds a report by item creation time. Zero From or To leaves
// that end open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) open() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// contains reports whether t falls inside the range, treating To as an
// inclusive end-of-range bound.
func (r DateRange) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// FilterItems returns the items created inside the range, preserving order.
func FilterItems(items []*domain.InventoryItem, rng DateRange) []*domain.InventoryItem {
	if rng.open() {
		return items
	}
	filtered := make([]*domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if rng.contains(item.CreatedAt) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// MarshalProjectPDF renders a project report: title, description, the
// requested time range when one was given, and a numbered line per item.
func MarshalProjectPDF(project *domain.Project, items []*domain.InventoryItem, rng DateRange) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Report for Project: "+project.Name, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	description := project.Description
	if description == "" {
		description = "N/A"
	}
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "Description: "+description, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if !rng.open() {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, "Time Range: "+rangeLabel(rng.From)+" to "+rangeLabel(rng.To), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 9, "Inventory Items:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	if len(items) == 0 {
		pdf.CellFormat(0, 7, "No inventory items found for this project.", "", 1, "L", false, 0, "")
	}
	for i, item := range items {
		line := fmt.Sprintf("%d. %s - Quantity: %d", i+1, item.Name, item.Quantity)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report.MarshalProjectPDF: %w", err)
	}

	return buf.Bytes(), nil
}

func rangeLabel(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02")
}
