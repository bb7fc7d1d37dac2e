package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"bond-valuation/internal/analysis"
	"bond-valuation/internal/config"
	"bond-valuation/internal/display"
	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "price":
		return cmdPrice(args[1:], stdout, stderr)
	case "presets":
		return cmdPresets(args[1:], stdout, stderr)
	case "rank":
		return cmdRank(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli price --face 100 --coupon 6 --ytm 5 --years 5 --freq 2")
	fmt.Fprintln(w, "  cli price --config examples/config.yaml --out results/sensitivity.csv")
	fmt.Fprintln(w, "  cli presets --dir examples/bonds")
	fmt.Fprintln(w, "  cli rank --dir examples/bonds")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - coupon and ytm are annual percentages; durations are reported in periods")
	fmt.Fprintln(w, "  - flags given explicitly override values from --config")
	fmt.Fprintln(w, "  - rank orders presets by modified duration in years and reprices at +/-100bp")
	fmt.Fprintln(w, "  - exit status 1 means the bond could not be valued")
}

func cmdPrice(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "Optional path to bond YAML config")
	face := fs.Float64("face", 100, "Face value")
	coupon := fs.Float64("coupon", 6, "Annual coupon rate (%)")
	ytm := fs.Float64("ytm", 5, "Annual yield to maturity (%)")
	years := fs.Int("years", 5, "Years to maturity")
	freq := fs.Int("freq", 2, "Coupon payments per year")
	halfWidth := fs.Float64("half-width", 0, "Sensitivity half width as a yield fraction (default 0.02)")
	step := fs.Float64("step", 0, "Sensitivity step as a yield fraction (default 0.005)")
	outPath := fs.String("out", "", "Optional: write the sensitivity table to this CSV path")
	flowsPath := fs.String("cashflows", "", "Optional: write the cash-flow schedule to this CSV path")
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	showFlows := fs.Bool("show-cashflows", false, "Include the cash-flow schedule in the text output")
	currency := fs.String("currency", "₹", "Currency symbol for prices")
	color := fs.Bool("color", false, "Colorize terminal output")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg := &config.Config{}
	if *cfgPath != "" {
		loaded, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			fmt.Fprintf(stderr, "load config: %v\n", err)
			return exitUsage
		}
		cfg = loaded
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	useFlag := func(name string) bool { return *cfgPath == "" || set[name] }

	if useFlag("face") {
		cfg.Bond.FaceValue = *face
	}
	if useFlag("coupon") {
		cfg.Bond.CouponRatePct = *coupon
	}
	if useFlag("ytm") {
		cfg.Bond.YieldPct = *ytm
	}
	if useFlag("years") {
		cfg.Bond.YearsToMaturity = *years
	}
	if useFlag("freq") {
		cfg.Bond.PaymentsPerYear = *freq
	}
	if set["half-width"] {
		cfg.Sensitivity.HalfWidth = *halfWidth
	}
	if set["step"] {
		cfg.Sensitivity.Step = *step
	}

	spec, err := cfg.Bond.ToSpec()
	if err != nil {
		return fail(stderr, err)
	}
	v, err := valuation.New().Value(spec, cfg.Sensitivity.ToParams())
	if err != nil {
		return fail(stderr, err)
	}

	if *outPath != "" {
		if err := writeCSV(*outPath, func(p string) error { return valuation.WriteSensitivityCSV(p, v.Table) }); err != nil {
			fmt.Fprintf(stderr, "write %s: %v\n", *outPath, err)
			return exitInvalid
		}
	}
	if *flowsPath != "" {
		if err := writeCSV(*flowsPath, func(p string) error { return valuation.WriteCashFlowCSV(p, v.CashFlows, v.DiscountFactors) }); err != nil {
			fmt.Fprintf(stderr, "write %s: %v\n", *flowsPath, err)
			return exitInvalid
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newJSONResult(v)); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return exitInvalid
		}
		return exitOK
	}

	display.Render(stdout, v, display.Options{Currency: *currency, ShowColors: *color, CashFlows: *showFlows})
	if *outPath != "" {
		fmt.Fprintf(stdout, "\nWrote %d rows to %s\n", len(v.Table), *outPath)
	}
	return exitOK
}

func cmdPresets(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "examples/bonds", "Directory of bond YAML presets")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	presets, err := config.ListPresets(*dir)
	if err != nil {
		fmt.Fprintf(stderr, "list presets: %v\n", err)
		return exitUsage
	}

	fmt.Fprintf(stdout, "%-20s %-26s %-10s %-8s %-8s %-6s %-5s\n", "id", "name", "face", "coupon%", "ytm%", "years", "freq")
	for _, p := range presets {
		b := p.Bond
		fmt.Fprintf(stdout, "%-20s %-26s %-10.2f %-8.3f %-8.3f %-6d %-5d\n",
			p.ID, b.Name, b.FaceValue, b.CouponRatePct, b.YieldPct, b.YearsToMaturity, b.PaymentsPerYear)
	}
	return exitOK
}

func cmdRank(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "examples/bonds", "Directory of bond YAML presets")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	presets, err := config.ListPresets(*dir)
	if err != nil {
		fmt.Fprintf(stderr, "list presets: %v\n", err)
		return exitUsage
	}
	bonds := make([]analysis.NamedBond, 0, len(presets))
	invalid := map[string]error{}
	for _, p := range presets {
		spec, err := p.Bond.ToSpec()
		if err != nil {
			invalid[p.ID] = err
			continue
		}
		bonds = append(bonds, analysis.NamedBond{ID: p.ID, Name: p.Bond.Name, Spec: spec})
	}

	ranked, skipped := analysis.RankByRateRisk(valuation.New(), bonds)
	for id, err := range invalid {
		skipped[id] = err
	}
	ids := make([]string, 0, len(skipped))
	for id := range skipped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(stderr, "skipping %s: %v\n", id, skipped[id])
	}

	fmt.Fprintf(stdout, "%-4s %-20s %-10s %-10s %-10s %-10s %-10s\n", "rank", "id", "price", "modDur(y)", "conv(y)", "-100bp%", "+100bp%")
	for i, r := range ranked {
		fmt.Fprintf(stdout, "%-4d %-20s %-10s %-10s %-10s %-10s %-10s\n",
			i+1,
			r.ID,
			display.Price(r.Result.Price),
			display.Fixed(r.ModifiedDurationYears, display.DurationPlaces),
			display.Fixed(r.ConvexityYears, display.ConvexityPlaces),
			display.Fixed(r.ShockDownPct, display.PercentPlaces),
			display.Fixed(r.ShockUpPct, display.PercentPlaces),
		)
	}
	return exitOK
}

func fail(stderr io.Writer, err error) int {
	if errors.Is(err, model.ErrInvalidSpec) {
		fmt.Fprintf(stderr, "cannot value bond: %v\n", err)
	} else {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return exitInvalid
}

func writeCSV(path string, write func(string) error) error {
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return write(path)
}

type jsonResult struct {
	Bond        jsonBond          `json:"bond"`
	Result      jsonMetrics       `json:"result"`
	Display     display.Summary   `json:"display"`
	Sensitivity []jsonSensitivity `json:"sensitivity"`
}

type jsonBond struct {
	FaceValue       float64 `json:"face_value"`
	CouponRate      float64 `json:"coupon_rate"`
	YieldToMaturity float64 `json:"ytm"`
	YearsToMaturity int     `json:"years_to_maturity"`
	PaymentsPerYear int     `json:"payments_per_year"`
}

type jsonMetrics struct {
	Price            float64 `json:"price"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
}

type jsonSensitivity struct {
	Yield float64 `json:"yield"`
	Price float64 `json:"price"`
}

func newJSONResult(v *valuation.Valuation) jsonResult {
	rows := make([]jsonSensitivity, len(v.Table))
	for i, r := range v.Table {
		rows[i] = jsonSensitivity{Yield: r.Yield, Price: r.Price}
	}
	return jsonResult{
		Bond: jsonBond{
			FaceValue:       v.Spec.FaceValue,
			CouponRate:      v.Spec.CouponRate,
			YieldToMaturity: v.Spec.YieldToMaturity,
			YearsToMaturity: v.Spec.YearsToMaturity,
			PaymentsPerYear: v.Spec.PaymentsPerYear,
		},
		Result: jsonMetrics{
			Price:            v.Result.Price,
			MacaulayDuration: v.Result.MacaulayDuration,
			ModifiedDuration: v.Result.ModifiedDuration,
			Convexity:        v.Result.Convexity,
		},
		Display:     display.Summarize(v.Result),
		Sensitivity: rows,
	}
}
