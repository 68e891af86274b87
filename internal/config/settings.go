package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. NETWORTH_ENGINE_END_AGE=100.
const EnvPrefix = "NETWORTH"

// Settings is everything the binary reads from its settings file and environment.
type Settings struct {
	Log    LogSettings    `mapstructure:"log"`
	Server ServerSettings `mapstructure:"server"`
	Engine EngineSettings `mapstructure:"engine"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EngineSettings mirrors domain.Assumptions with plain types so viper can decode it.
type EngineSettings struct {
	EndAge        int                `mapstructure:"end_age"`
	MilestoneAges []int              `mapstructure:"milestone_ages"`
	Tax           TaxSettings        `mapstructure:"tax"`
	Withdrawal    WithdrawalSettings `mapstructure:"withdrawal"`
	MonteCarlo    MonteCarloSettings `mapstructure:"monte_carlo"`
}

type TaxSettings struct {
	OrdinaryRate        float64 `mapstructure:"ordinary_rate"`
	CapitalGainsRate    float64 `mapstructure:"capital_gains_rate"`
	DefaultGainFraction float64 `mapstructure:"default_gain_fraction"`
	DividendYield       float64 `mapstructure:"dividend_yield"`
	IncomeTaxMode       string  `mapstructure:"income_tax_mode"`
	FlatIncomeRate      float64 `mapstructure:"flat_income_rate"`
}

type WithdrawalSettings struct {
	Order              []string `mapstructure:"order"`
	ShortfallTolerance float64  `mapstructure:"shortfall_tolerance"`
	EnforceRMD         bool     `mapstructure:"enforce_rmd"`
	ReinvestSurplus    bool     `mapstructure:"reinvest_surplus"`
}

type MonteCarloSettings struct {
	MaxRuns         int     `mapstructure:"max_runs"`
	MaxFailureRatio float64 `mapstructure:"max_failure_ratio"`
	Workers         int     `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	d := domain.DefaultAssumptions()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("engine.end_age", d.EndAge)
	v.SetDefault("engine.milestone_ages", d.MilestoneAges)
	v.SetDefault("engine.tax.ordinary_rate", d.Tax.OrdinaryRate.InexactFloat64())
	v.SetDefault("engine.tax.capital_gains_rate", d.Tax.CapitalGainsRate.InexactFloat64())
	v.SetDefault("engine.tax.default_gain_fraction", d.Tax.DefaultGainFraction.InexactFloat64())
	v.SetDefault("engine.tax.dividend_yield", d.Tax.DividendYield.InexactFloat64())
	v.SetDefault("engine.tax.income_tax_mode", string(d.Tax.IncomeTaxMode))
	v.SetDefault("engine.tax.flat_income_rate", d.Tax.FlatIncomeRate.InexactFloat64())

	order := make([]string, len(d.Withdrawal.Order))
	for i, src := range d.Withdrawal.Order {
		order[i] = string(src)
	}
	v.SetDefault("engine.withdrawal.order", order)
	v.SetDefault("engine.withdrawal.shortfall_tolerance", d.Withdrawal.ShortfallTolerance.InexactFloat64())
	v.SetDefault("engine.withdrawal.enforce_rmd", d.Withdrawal.EnforceRMD)
	v.SetDefault("engine.withdrawal.reinvest_surplus", d.Withdrawal.ReinvestSurplus)

	v.SetDefault("engine.monte_carlo.max_runs", d.MonteCarlo.MaxRuns)
	v.SetDefault("engine.monte_carlo.max_failure_ratio", d.MonteCarlo.MaxFailureRatio)
	v.SetDefault("engine.monte_carlo.workers", d.MonteCarlo.Workers)
}

// LoadSettings reads defaults, then the optional settings file at path (yaml, json or toml),
// then NETWORTH_* environment variables.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}

// Assumptions converts the engine settings into validated domain assumptions.
// Bracket tables are not configurable and always use the built-in schedules.
func (s *Settings) Assumptions() (domain.Assumptions, error) {
	e := s.Engine
	a := domain.DefaultAssumptions()

	a.EndAge = e.EndAge
	a.MilestoneAges = append([]int(nil), e.MilestoneAges...)

	a.Tax.OrdinaryRate = decimal.NewFromFloat(e.Tax.OrdinaryRate)
	a.Tax.CapitalGainsRate = decimal.NewFromFloat(e.Tax.CapitalGainsRate)
	a.Tax.DefaultGainFraction = decimal.NewFromFloat(e.Tax.DefaultGainFraction)
	a.Tax.DividendYield = decimal.NewFromFloat(e.Tax.DividendYield)
	a.Tax.IncomeTaxMode = domain.IncomeTaxMode(strings.ToLower(e.Tax.IncomeTaxMode))
	a.Tax.FlatIncomeRate = decimal.NewFromFloat(e.Tax.FlatIncomeRate)

	a.Withdrawal.Order = make([]domain.WithdrawalSource, len(e.Withdrawal.Order))
	for i, src := range e.Withdrawal.Order {
		a.Withdrawal.Order[i] = domain.WithdrawalSource(strings.TrimSpace(strings.ToLower(src)))
	}
	a.Withdrawal.ShortfallTolerance = decimal.NewFromFloat(e.Withdrawal.ShortfallTolerance)
	a.Withdrawal.EnforceRMD = e.Withdrawal.EnforceRMD
	a.Withdrawal.ReinvestSurplus = e.Withdrawal.ReinvestSurplus

	a.MonteCarlo = domain.MonteCarloLimits{
		MaxRuns:         e.MonteCarlo.MaxRuns,
		MaxFailureRatio: e.MonteCarlo.MaxFailureRatio,
		Workers:         e.MonteCarlo.Workers,
	}

	if err := a.Validate(); err != nil {
		return domain.Assumptions{}, fmt.Errorf("invalid engine settings: %w", err)
	}
	return a, nil
}
