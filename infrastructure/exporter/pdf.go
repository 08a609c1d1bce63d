// Package exporter renders reports to downloadable documents.
package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/pkg/utils"
)

const (
	pageMargin   = 10.0
	bottomMargin = 15.0
	rowHeight    = 8.0
	fontFamily   = "Helvetica"
)

type Exporter interface {
	Export(w io.Writer, report *domain.Report) error
}

// PDFExporter writes A4 portrait reports; long tables continue on new pages
// with the column headers repeated.
type PDFExporter struct {
	Title string
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{Title: "Tour Sales Report"}
}

// FileName is the download name of an exported report.
func FileName(report *domain.Report) string {
	return fmt.Sprintf("tour_report_%s_%s.pdf", report.Tab, report.ReferenceDate)
}

func FormatCurrency(amount float64) string {
	return "Rs. " + utils.FormatAmount(amount)
}

type table struct {
	headers []string
	widths  []float64
	aligns  []string
	rows    [][]string
}

func (e *PDFExporter) Export(w io.Writer, report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("no report to export")
	}
	t, err := tableFor(report)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.SetTextColor(78, 115, 223)
	pdf.CellFormat(0, 10, tr(e.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "B", 13)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 8, tr(report.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 6, tr("Period: "+report.Period), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+report.GeneratedAt.Format("Jan 02, 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	_, pageHeight := pdf.GetPageSize()
	drawHeader := func() {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.SetFillColor(78, 115, 223)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.headers {
			pdf.CellFormat(t.widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(33, 37, 41)
	}

	drawHeader()
	if len(t.rows) == 0 {
		pdf.CellFormat(sum(t.widths), rowHeight, "No sales recorded for this period", "1", 1, "C", false, 0, "")
	}
	for i, row := range t.rows {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			drawHeader()
		}
		fill := i%2 == 1
		pdf.SetFillColor(248, 249, 252)
		for j, cell := range row {
			pdf.CellFormat(t.widths[j], rowHeight, tr(cell), "1", 0, t.aligns[j], fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", 11)
	summary := [][2]string{
		{"Total units sold", strconv.Itoa(report.Totals.UnitsSold)},
		{"Total sales", FormatCurrency(report.Totals.TotalSales)},
		{"Average per unit", FormatCurrency(report.Totals.AveragePerUnit)},
	}
	for _, line := range summary {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
		}
		pdf.CellFormat(60, rowHeight, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(60, rowHeight, line[1], "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func tableFor(report *domain.Report) (table, error) {
	switch report.Tab {
	case domain.ReportDaily:
		t := table{
			headers: []string{"Package", "Units Sold", "Price / Unit", "Total Sales"},
			widths:  []float64{80, 30, 40, 40},
			aligns:  []string{"L", "C", "R", "R"},
		}
		for _, p := range report.Daily {
			t.rows = append(t.rows, []string{
				p.PackageName, strconv.Itoa(p.UnitsSold), FormatCurrency(p.PricePerUnit), FormatCurrency(p.TotalSales),
			})
		}
		return t, nil
	case domain.ReportWeekly:
		t := table{
			headers: []string{"Date", "Day", "Units Sold", "Total Sales"},
			widths:  []float64{40, 60, 40, 50},
			aligns:  []string{"L", "L", "C", "R"},
		}
		for _, d := range report.Weekly {
			t.rows = append(t.rows, []string{
				d.Label, d.DayName, strconv.Itoa(d.UnitsSold), FormatCurrency(d.TotalSales),
			})
		}
		return t, nil
	case domain.ReportMonthly:
		t := table{
			headers: []string{"Week", "Period", "Units Sold", "Total Sales"},
			widths:  []float64{35, 65, 40, 50},
			aligns:  []string{"L", "L", "C", "R"},
		}
		for _, wk := range report.Monthly {
			t.rows = append(t.rows, []string{
				wk.Label, wk.Period, strconv.Itoa(wk.UnitsSold), FormatCurrency(wk.TotalSales),
			})
		}
		return t, nil
	}
	return table{}, fmt.Errorf("unknown report tab %q", report.Tab)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
