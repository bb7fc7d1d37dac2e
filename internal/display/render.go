package display

import (
	"fmt"
	"io"
	"strings"

	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"
)

// Colors for terminal output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorCyan  = "\033[36m"
	ColorGreen = "\033[32m"
)

type Options struct {
	Currency   string
	ShowColors bool
	CashFlows  bool
}

// Render writes the valuation as the dashboard laid it out: metrics first,
// then the sensitivity table.
func Render(w io.Writer, v *valuation.Valuation, opts Options) {
	bold, cyan, reset := "", "", ""
	if opts.ShowColors {
		bold, cyan, reset = ColorBold, ColorCyan, ColorReset
	}
	s := Summarize(v.Result)
	separator := strings.Repeat("=", 44)

	fmt.Fprintf(w, "%s%s%s\n", cyan, separator, reset)
	fmt.Fprintf(w, "%sBond Valuation%s  face=%s coupon=%s%% ytm=%s%% years=%d freq=%d (%s)\n",
		bold, reset,
		Price(v.Spec.FaceValue),
		Percent(v.Spec.CouponRate),
		Percent(v.Spec.YieldToMaturity),
		v.Spec.YearsToMaturity,
		v.Spec.PaymentsPerYear,
		model.FrequencyFromPaymentsPerYear(v.Spec.PaymentsPerYear),
	)
	fmt.Fprintf(w, "%s%s%s\n", cyan, separator, reset)
	fmt.Fprintf(w, "%-20s %s%s\n", "Bond Price:", opts.Currency, s.Price)
	fmt.Fprintf(w, "%-20s %s periods\n", "Macaulay Duration:", s.MacaulayDuration)
	fmt.Fprintf(w, "%-20s %s periods\n", "Modified Duration:", s.ModifiedDuration)
	fmt.Fprintf(w, "%-20s %s\n", "Convexity:", s.Convexity)

	if opts.CashFlows {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s%-8s %-14s %-14s %-14s%s\n", bold, "period", "cash flow", "discount", "present value", reset)
		fmt.Fprintln(w, strings.Repeat("-", 53))
		for i, cf := range v.CashFlows {
			df := v.DiscountFactors[i]
			fmt.Fprintf(w, "%-8d %-14s %-14s %-14s\n", cf.Period, Price(cf.Amount), Fixed(df, 6), Price(cf.Amount/df))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%-10s %-14s%s\n", bold, "YTM (%)", "Price", reset)
	fmt.Fprintln(w, strings.Repeat("-", 25))
	for i, row := range Table(v.Table) {
		color := ""
		if opts.ShowColors && isCenter(v, i) {
			color = ColorGreen
		}
		fmt.Fprintf(w, "%s%-10s %s%s%s\n", color, row.YieldPct, opts.Currency, row.Price, reset)
	}
}

func isCenter(v *valuation.Valuation, i int) bool {
	return len(v.Table)%2 == 1 && i == len(v.Table)/2
}
