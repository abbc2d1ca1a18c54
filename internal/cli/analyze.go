package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finplan/internal/core"
	"finplan/internal/planning"
	"finplan/internal/seed"
	"finplan/internal/services"
)

var (
	flagInput   string
	flagDemo    bool
	flagHorizon int
	flagToday   string
	flagBalance string
	flagJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis over a JSON input file",
	Long: `Reads monthly records and goals from a JSON file and prints the cash
flow summary, expense forecast, and goal plan. With --demo, generated
sample data is analyzed instead.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Path to a JSON input file")
	analyzeCmd.Flags().BoolVar(&flagDemo, "demo", false, "Analyze generated demo data")
	analyzeCmd.Flags().IntVar(&flagHorizon, "horizon", 0, "Forecast horizon in months (default from config)")
	analyzeCmd.Flags().StringVar(&flagToday, "today", "", "Analysis date as YYYY-MM-DD (default: current date)")
	analyzeCmd.Flags().StringVar(&flagBalance, "balance", "", "Starting balance to allocate to goals")
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the raw JSON result")
	rootCmd.AddCommand(analyzeCmd)
}

// inputFile mirrors the analyze API payload for local files.
type inputFile struct {
	Records []struct {
		Month    string                     `json:"month"`
		Income   decimal.Decimal            `json:"income"`
		Expenses map[string]decimal.Decimal `json:"expenses"`
	} `json:"records"`
	Goals []struct {
		Name     string          `json:"name"`
		Amount   decimal.Decimal `json:"amount"`
		DueDate  string          `json:"due_date"`
		Priority string          `json:"priority"`
	} `json:"goals"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if flagToday != "" {
		today, err = time.ParseInLocation("2006-01-02", flagToday, time.UTC)
		if err != nil {
			return fmt.Errorf("parse --today: %w", err)
		}
	}

	input := services.AnalysisInput{
		HorizonMonths: cfg.DefaultHorizonMonths,
		Today:         today,
	}
	switch {
	case flagDemo:
		input.Records = seed.Records(cfg.DemoSeed, today)
		input.Goals = seed.Goals(cfg.DemoSeed, today)
	case flagInput != "":
		if err := loadInputFile(flagInput, &input); err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --input or --demo is required")
	}

	if flagHorizon > 0 {
		input.HorizonMonths = flagHorizon
	}
	if flagBalance != "" {
		balance, err := core.ParseAmount(flagBalance)
		if err != nil {
			return fmt.Errorf("parse --balance: %w", err)
		}
		input.CurrentBalance = balance
	}

	thresholds := planning.Thresholds{
		LowSavingsRate:     decimal.NewFromFloat(cfg.LowSavingsRate),
		HealthySavingsRate: decimal.NewFromFloat(cfg.HealthySavingsRate),
	}
	svc := services.NewAnalysisService(thresholds, cfg.EmergencyFundMonths, nil, newLogger())
	result, err := svc.Analyze(cmd.Context(), input)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(os.Stdout, result)
	return nil
}

func loadInputFile(path string, input *services.AnalysisInput) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	var file inputFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}

	for _, r := range file.Records {
		input.Records = append(input.Records, core.MonthlyRecord{
			Month:    r.Month,
			Income:   r.Income,
			Expenses: r.Expenses,
		})
	}
	for _, g := range file.Goals {
		due, err := time.ParseInLocation("2006-01-02", g.DueDate, time.UTC)
		if err != nil {
			return fmt.Errorf("goal %q: parse due date: %w", g.Name, err)
		}
		input.Goals = append(input.Goals, core.UpcomingExpense{
			Name:     g.Name,
			Amount:   g.Amount,
			DueDate:  due,
			Priority: core.Priority(g.Priority),
		})
	}
	input.CurrentBalance = file.CurrentBalance
	return nil
}

func printResult(w *os.File, result core.AnalysisResult) {
	fmt.Fprintf(w, "Cash flow over %d months\n", result.Summary.Months)
	fmt.Fprintf(w, "  Average income:   %s\n", result.Summary.AverageIncome.StringFixed(2))
	fmt.Fprintf(w, "  Average expenses: %s\n", result.Summary.AverageExpense.StringFixed(2))
	fmt.Fprintf(w, "  Savings capacity: %s\n", result.Summary.SavingsCapacity.StringFixed(2))
	fmt.Fprintf(w, "  Emergency fund:   %s\n", result.EmergencyFund.StringFixed(2))

	if len(result.Forecast) > 0 {
		fmt.Fprintf(w, "\nProjected expenses (next %d months)\n", len(result.Forecast))
		for _, p := range result.Forecast {
			fmt.Fprintf(w, "  month %-3d %s\n", p.Index+1, p.Projected.StringFixed(2))
		}
	}

	if len(result.Plan.Goals) > 0 {
		fmt.Fprintf(w, "\nGoals\n")
		for _, g := range result.Plan.Goals {
			fmt.Fprintf(w, "  %-24s due %s  save %s/month (%d months, %s%% ready)\n",
				g.Name,
				g.DueDate.Format("2006-01-02"),
				g.RequiredMonthly.StringFixed(2),
				g.MonthsRemaining,
				g.ReadinessRatio.Mul(decimal.NewFromInt(100)).StringFixed(0))
		}
		fmt.Fprintf(w, "  Total required: %s/month\n", result.Plan.TotalRequiredMonthly.StringFixed(2))
		if result.Plan.Shortfall.IsPositive() {
			fmt.Fprintf(w, "  Shortfall:      %s/month\n", result.Plan.Shortfall.StringFixed(2))
		} else {
			fmt.Fprintf(w, "  Monthly margin: %s\n", result.Plan.Shortfall.Neg().StringFixed(2))
		}
	}
	if rate := result.Plan.SavingsRate; rate.Valid {
		fmt.Fprintf(w, "  Savings rate:   %s%%\n", rate.Decimal.Mul(decimal.NewFromInt(100)).StringFixed(1))
	}

	if len(result.Plan.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations\n")
		for _, rec := range result.Plan.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec.Message)
		}
	}
}
