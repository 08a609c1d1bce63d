package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/calendaring"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
)

type calendarCmd struct {
	cli   *CLI
	month string
	nav   string
	date  string
}

func (cli *CLI) newCalendarCmd() *cobra.Command {
	cc := &calendarCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the promotion calendar for a month",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.month, "month", "", "Month to show as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&cc.nav, "nav", "", "Move from --month: prev, next or today")
	cmd.Flags().StringVar(&cc.date, "date", "", "Also list the promotions running on this YYYY-MM-DD")

	return cmd
}

func (cc *calendarCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, ctx, cancel, err := cc.cli.session(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	client := cc.cli.opts.NewClient(cfg)
	promoter := promoting.NewService(cfg, client).WithClock(cc.cli.opts.Now)
	service := calendaring.NewService(cfg, promoter).WithClock(cc.cli.opts.Now)

	month, err := service.Month(ctx, calendaring.MonthRequest{Month: cc.month, Nav: cc.nav, Date: cc.date})
	if err != nil {
		return fmt.Errorf("load calendar: %w", err)
	}

	out := cmd.OutOrStdout()
	printMonth(out, month)
	if month.SelectedDay != nil {
		printDay(out, month.SelectedDay)
	}
	return nil
}

// printMonth draws the grid one week per line. Days outside the month are
// bracketed, today is starred and every running promotion adds a dot.
func printMonth(out io.Writer, month *domain.CalendarMonth) {
	fmt.Fprintf(out, "%s\n\n", month.Title)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(month.WeekDays, "\t"))

	for week := 0; week*7 < len(month.Cells); week++ {
		cells := month.Cells[week*7 : min(len(month.Cells), week*7+7)]
		labels := make([]string, 0, len(cells))
		for _, c := range cells {
			labels = append(labels, cellLabel(c))
		}
		fmt.Fprintln(tw, strings.Join(labels, "\t"))
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\nActive promotions: %d\n", month.Summary.ActiveCount)
	for _, p := range month.Summary.Upcoming {
		fmt.Fprintf(out, "  %s  %s to %s\n", p.Title, p.StartDate, p.EndDate)
	}
}

func cellLabel(c domain.CalendarCell) string {
	label := fmt.Sprintf("%2d", c.Date.Day())
	if !c.InCurrentMonth {
		label = "(" + strings.TrimSpace(label) + ")"
	}
	if c.IsToday {
		label += "*"
	}
	if n := len(c.Promotions); n > 0 {
		label += " " + strings.Repeat(".", min(n, domain.MaxVisiblePromotions))
		if c.Overflow > 0 {
			label += fmt.Sprintf("+%d", c.Overflow)
		}
	}
	return label
}

func printDay(out io.Writer, day *domain.CalendarDayDetail) {
	fmt.Fprintf(out, "\n%s\n", day.Title)
	if len(day.Promotions) == 0 {
		fmt.Fprintln(out, "  No promotions on this day")
		return
	}
	for _, p := range day.Promotions {
		fmt.Fprintf(out, "  %s  [%s]  %s (%d days)\n", p.Title, p.Color, p.Period, p.DurationDays)
	}
}
