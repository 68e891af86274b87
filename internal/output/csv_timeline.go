package output

import (
	"bytes"
	"encoding/csv"
)

// CSVTimelineExporter writes one row per projected year with balances by class and after-tax flows.
// A report carrying only a Monte Carlo result falls back to its percentile rows.
type CSVTimelineExporter struct{}

func (c CSVTimelineExporter) Name() string { return "csv" }
func (c CSVTimelineExporter) Ext() string  { return "csv" }

func (c CSVTimelineExporter) Format(r *Report) ([]byte, error) {
	if r != nil && r.Simulation == nil && r.MonteCarlo != nil {
		return MonteCarloCSVExporter{}.Format(r)
	}
	if r == nil || r.Simulation == nil {
		return nil, ErrMissingResult
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "Age", "NominalNetWorth", "RealNetWorth",
		"PreTax", "Roth", "Brokerage", "Volatile", "RealEstate", "PrimaryHome",
		"Salary", "Rental", "Royalty", "Dividends", "SocialSecurity", "OtherIncome",
		"PreTaxWithdrawals", "BrokerageWithdrawals", "VolatileWithdrawals", "RothWithdrawals",
		"TotalExpenses", "UnmetShortfall", "Depleted",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range r.Simulation.Timeline {
		b, f := rec.Balances, rec.AfterTax
		row := []string{
			intToString(rec.Year),
			intToString(rec.Age),
			money(rec.NominalNetWorth),
			money(rec.RealNetWorth),
			money(b.PreTax), money(b.Roth), money(b.Brokerage), money(b.Volatile), money(b.RealEstate), money(b.PrimaryHome),
			money(f.Salary), money(f.Rental), money(f.Royalty), money(f.Dividends), money(f.SocialSecurity), money(f.OtherIncome),
			money(f.PreTaxWithdrawals), money(f.BrokerageWithdrawals), money(f.VolatileWithdrawals), money(f.RothWithdrawals),
			money(rec.TotalExpenses),
			money(rec.UnmetShortfall),
			boolToString(rec.Depleted),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
