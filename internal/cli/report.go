package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/exporter"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/reporting"
	"github.com/vinodrajapaksha/ttms-api/pkg/utils"
)

type reportCmd struct {
	cli       *CLI
	tab       string
	date      string
	nav       string
	exportDir string
	asJSON    bool
}

func (cli *CLI) newReportCmd() *cobra.Command {
	rc := &reportCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate a daily, weekly or monthly sales report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.tab, "tab", string(domain.ReportDaily), "Report tab: daily, weekly or monthly")
	cmd.Flags().StringVar(&rc.date, "date", "", "Reference day as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&rc.nav, "nav", "", "Step from --date: prev or next")
	cmd.Flags().StringVar(&rc.exportDir, "export", "", "Directory to write the PDF export to")
	cmd.Flags().BoolVar(&rc.asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, ctx, cancel, err := rc.cli.session(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	pdf := exporter.NewPDFExporter()
	service := reporting.NewService(cfg, rc.cli.opts.NewClient(cfg), pdf).
		WithClock(rc.cli.opts.Now)
	req := reporting.Request{Tab: domain.ReportTab(rc.tab), Date: rc.date, Nav: rc.nav}

	report, err := service.Report(ctx, req)
	if err != nil {
		return errors.Wrap(err, "load report")
	}

	out := cmd.OutOrStdout()
	if rc.asJSON {
		body, err := utils.PrettyJson(report)
		if err != nil {
			return errors.Wrap(err, "encode report")
		}
		fmt.Fprintln(out, body)
	} else {
		printReport(out, report)
	}

	if rc.exportDir == "" {
		return nil
	}

	path := filepath.Join(rc.exportDir, exporter.FileName(report))
	if err := writeExport(path, func(w io.Writer) error {
		return pdf.Export(w, report)
	}); err != nil {
		return errors.Wrap(err, "export report")
	}

	fmt.Fprintf(out, "\nExported to %s\n", path)
	return nil
}

// writeExport removes a partial file when render fails.
func writeExport(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func printReport(out io.Writer, report *domain.Report) {
	fmt.Fprintf(out, "%s\n%s\n\n", report.Title, report.Period)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	switch report.Tab {
	case domain.ReportDaily:
		fmt.Fprintln(tw, "Package\tUnits\tTotal\tPrice/unit\t")
		for _, row := range report.Daily {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", row.PackageName, row.UnitsSold,
				exporter.FormatCurrency(row.TotalSales), exporter.FormatCurrency(row.PricePerUnit))
		}
		if len(report.Daily) == 0 {
			fmt.Fprintln(tw, "No sales recorded\t\t\t\t")
		}
	case domain.ReportWeekly:
		fmt.Fprintln(tw, "Date\tDay\tUnits\tTotal\t")
		for _, row := range report.Weekly {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t\n", row.Label, row.DayName, row.UnitsSold, exporter.FormatCurrency(row.TotalSales))
		}
	case domain.ReportMonthly:
		fmt.Fprintln(tw, "Week\tPeriod\tUnits\tTotal\t")
		for _, row := range report.Monthly {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t\n", row.Label, row.Period, row.UnitsSold, exporter.FormatCurrency(row.TotalSales))
		}
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\nUnits sold: %d\nTotal sales: %s\nAverage per unit: %s\n",
		report.Totals.UnitsSold,
		exporter.FormatCurrency(report.Totals.TotalSales),
		exporter.FormatCurrency(report.Totals.AveragePerUnit))

	if report.SkippedRows > 0 {
		fmt.Fprintf(out, "(%d rows with unreadable dates were left out)\n", report.SkippedRows)
	}
}
