package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"bond-valuation/internal/config"
	"bond-valuation/internal/display"
	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"
)

// Demo:
// - Value a handful of reference bonds
// - Show how price moves against yield for each
// - Show the InvalidSpec path for a bond with no periods
func main() {
	cfgPath := flag.String("config", "", "Path to bond YAML config (optional, replaces the built-in bonds)")
	currency := flag.String("currency", "₹", "Currency symbol for prices")
	flag.Parse()

	bonds := []model.BondSpec{
		{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 5, PaymentsPerYear: 2},
		{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.06, YearsToMaturity: 10, PaymentsPerYear: 4},
		{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0, YearsToMaturity: 5, PaymentsPerYear: 2},
		{FaceValue: 100, CouponRate: 0, YieldToMaturity: 0.04, YearsToMaturity: 30, PaymentsPerYear: 2},
	}
	params := valuation.DefaultSensitivity()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		spec, err := cfg.Bond.ToSpec()
		if err != nil {
			panic(err)
		}
		bonds = []model.BondSpec{spec}
		params = cfg.Sensitivity.ToParams()
	}

	engine := valuation.New()
	for _, spec := range bonds {
		v, err := engine.Value(spec, params)
		if err != nil {
			panic(err)
		}
		display.Render(os.Stdout, v, display.Options{Currency: *currency})
		fmt.Println()
	}

	// A bond with zero payment frequency has no periods and cannot be valued.
	_, err := engine.Value(model.BondSpec{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 5}, params)
	if !errors.Is(err, model.ErrInvalidSpec) {
		panic(fmt.Errorf("expected invalid spec, got %v", err))
	}
	fmt.Printf("Rejected bond without payments: %v\n", err)
}
