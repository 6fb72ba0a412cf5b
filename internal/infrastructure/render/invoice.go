// Package render produces printable artifacts for persisted documents.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"platedepot/internal/core/types"
	"platedepot/internal/domain/catalogs/client"
	"platedepot/internal/domain/documents/bill"
)

const dateLayout = "02-01-2006"

// BuildInvoicePDF renders a persisted bill as a printable invoice.
func BuildInvoicePDF(b *bill.Bill, c *client.Client) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Centering Plate Rental Bill")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Bill No: %s", b.Number))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Bill Date: %s", b.Date.Format(dateLayout)))
	pdf.Ln(5)
	if b.PeriodFrom != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Period From: %s", b.PeriodFrom.Format(dateLayout)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Client: %s (%s)", c.Name, c.Code))
	pdf.Ln(5)
	if c.Phone != nil && *c.Phone != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Phone: %s", *c.Phone))
		pdf.Ln(5)
	}
	if c.SiteAddress != nil && *c.SiteAddress != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Site: %s", *c.SiteAddress))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Rent breakdown by date range
	if len(b.DateRanges) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 6, "From", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "To", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Plates", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Days", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Rent", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, rng := range b.DateRanges {
			pdf.CellFormat(35, 6, rng.StartDate.Format(dateLayout), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, rng.EndDate.Format(dateLayout), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", rng.PlateBalance), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", rng.Days), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, money(rng.Amount), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	// Movement summary
	pdf.Cell(0, 6, fmt.Sprintf("Plates Issued: %d    Returned: %d    Lost: %d",
		b.TotalIssued, b.TotalReturned, b.LostPlates))
	pdf.Ln(8)

	// Charges
	writeAmountRow(pdf, "Total Rent", b.TotalRent)
	writeAmountRow(pdf, "Service Charge", b.ServiceCharge)
	writeAmountRow(pdf, "Worker Charge", b.WorkerCharge)
	writeAmountRow(pdf, "Lost Plate Penalty", b.LostPlatePenalty)
	for _, extra := range b.Extras {
		writeAmountRow(pdf, "Extra: "+extra.Note, extra.Total)
	}
	for _, disc := range b.Discounts {
		writeAmountRow(pdf, "Discount: "+disc.Note, disc.Total.Neg())
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	writeAmountRow(pdf, "Adjusted Total", b.AdjustedTotal)
	pdf.SetFont("Arial", "", 10)

	writeAmountRow(pdf, "Advance Paid", b.AdvancePaid)
	for _, p := range b.Payments {
		label := "Payment"
		if p.Note != "" {
			label = "Payment: " + p.Note
		}
		writeAmountRow(pdf, label, p.Amount)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	if b.BalanceCarryForward.IsPositive() {
		writeAmountRow(pdf, "Balance Carried Forward", b.BalanceCarryForward)
	} else {
		writeAmountRow(pdf, "Final Due", b.FinalDue)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAmountRow(pdf *gofpdf.Fpdf, label string, amount types.Money) {
	pdf.CellFormat(130, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, money(amount), "", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func money(m types.Money) string {
	return types.RoundMoney(m).StringFixed(2)
}
