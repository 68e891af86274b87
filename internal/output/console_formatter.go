package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/networth-projector/internal/domain"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	badStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// ConsoleFormatter renders a styled terminal summary of whichever results the report carries.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }
func (c ConsoleFormatter) Ext() string  { return "txt" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || (r.Simulation == nil && r.MonteCarlo == nil) {
		return nil, ErrMissingResult
	}
	var b strings.Builder
	if r.Simulation != nil {
		writeSimulation(&b, r.Scenario, r.Simulation)
	}
	if r.MonteCarlo != nil {
		if r.Simulation != nil {
			b.WriteString("\n")
		}
		writeMonteCarlo(&b, r.MonteCarlo)
	}
	return []byte(b.String()), nil
}

func writeSimulation(b *strings.Builder, s *domain.Scenario, res *domain.SimulationResult) {
	b.WriteString(titleStyle.Render("NET WORTH PROJECTION"))
	b.WriteString("\n")

	var kv [][2]string
	if s != nil {
		kv = append(kv,
			[2]string{"Start", fmt.Sprintf("%d (age %d)", s.CurrentYear, s.CurrentAge)},
			[2]string{"General inflation", FormatRate(s.GeneralInflation)},
		)
	}
	if res.FreedomYear != nil {
		kv = append(kv, [2]string{"Financial freedom", goodStyle.Render(intToString(*res.FreedomYear))})
	} else {
		kv = append(kv, [2]string{"Financial freedom", warnStyle.Render("not reached")})
	}
	if p := res.Metrics.Retirement; p != nil {
		kv = append(kv, [2]string{fmt.Sprintf("Net worth at %d", p.Age), fmt.Sprintf("%s (%s real)", FormatCurrency(p.Nominal), FormatCurrency(p.Real))})
	}
	for _, p := range res.Metrics.Milestones {
		kv = append(kv, [2]string{fmt.Sprintf("Net worth at %d", p.Age), fmt.Sprintf("%s (%s real)", FormatCurrency(p.Nominal), FormatCurrency(p.Real))})
	}
	if res.Depleted() {
		for _, rec := range res.Timeline {
			if rec.Depleted {
				kv = append(kv, [2]string{"Liquid assets", badStyle.Render(fmt.Sprintf("depleted in %d (age %d)", rec.Year, rec.Age))})
				break
			}
		}
	} else {
		kv = append(kv, [2]string{"Liquid assets", goodStyle.Render("never depleted")})
	}
	writeKeyValues(b, kv)

	rows := make([][]string, 0, len(res.Timeline))
	for _, rec := range res.Timeline {
		rows = append(rows, []string{
			intToString(rec.Year),
			intToString(rec.Age),
			FormatCurrency(rec.NominalNetWorth),
			FormatCurrency(rec.RealNetWorth),
			FormatCurrency(rec.Balances.Liquid()),
			FormatCurrency(rec.AfterTax.Income()),
			FormatCurrency(rec.AfterTax.Withdrawals()),
			FormatCurrency(rec.TotalExpenses),
			FormatCurrency(rec.UnmetShortfall),
		})
	}
	b.WriteString("\n")
	b.WriteString(renderTable("Timeline",
		[]string{"Year", "Age", "Net Worth", "Real", "Liquid", "Income", "Withdrawals", "Expenses", "Shortfall"}, rows))
}

func writeMonteCarlo(b *strings.Builder, res *domain.MonteCarloResult) {
	b.WriteString(titleStyle.Render("MONTE CARLO SIMULATION"))
	b.WriteString("\n")

	rate := res.SuccessRate.InexactFloat64()
	style := goodStyle
	switch {
	case rate < 75:
		style = badStyle
	case rate < 90:
		style = warnStyle
	}
	writeKeyValues(b, [][2]string{
		{"Success rate", style.Render(FormatPercentage(res.SuccessRate))},
		{"Runs", fmt.Sprintf("%d (%d excluded)", res.NumRuns, res.ExcludedRuns)},
		{"Seed", fmt.Sprintf("%d", res.Seed)},
	})

	rows := make([][]string, 0, len(res.PercentileData)/5+1)
	for i, row := range res.PercentileData {
		if i%5 != 0 && i != len(res.PercentileData)-1 {
			continue
		}
		rows = append(rows, []string{
			intToString(row.Age),
			intToString(row.Year),
			FormatCurrency(row.P10),
			FormatCurrency(row.P25),
			FormatCurrency(row.P50),
			FormatCurrency(row.P75),
			FormatCurrency(row.P90),
		})
	}
	b.WriteString("\n")
	b.WriteString(renderTable("Nominal net worth percentiles",
		[]string{"Age", "Year", "P10", "P25", "P50", "P75", "P90"}, rows))
}

func writeKeyValues(b *strings.Builder, kv [][2]string) {
	width := 0
	for _, p := range kv {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range kv {
		fmt.Fprintf(b, "  %s  %s\n", labelStyle.Render(fmt.Sprintf("%-*s", width, p[0])), valueStyle.Render(p[1]))
	}
}

// renderTable draws a rounded box table; the first column is left aligned, the rest right aligned.
func renderTable(title string, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	rule := func(left, mid, right string) string {
		var s strings.Builder
		s.WriteString(left)
		for i, w := range widths {
			s.WriteString(strings.Repeat("─", w+2))
			if i < len(widths)-1 {
				s.WriteString(mid)
			}
		}
		s.WriteString(right)
		return dimStyle.Render(s.String()) + "\n"
	}
	line := func(cells []string, style lipgloss.Style) string {
		var s strings.Builder
		s.WriteString(dimStyle.Render("│"))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == 0 {
				s.WriteString(style.Render(fmt.Sprintf(" %-*s ", w, cell)))
			} else {
				s.WriteString(style.Render(fmt.Sprintf(" %*s ", w, cell)))
			}
			s.WriteString(dimStyle.Render("│"))
		}
		return s.String() + "\n"
	}

	var b strings.Builder
	if title != "" {
		b.WriteString("  " + headerStyle.Render(title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	b.WriteString(line(headers, headerStyle))
	b.WriteString(rule("├", "┼", "┤"))
	for _, row := range rows {
		b.WriteString(line(row, valueStyle))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}
