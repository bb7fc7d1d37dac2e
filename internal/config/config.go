package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk bond description (YAML).
type Config struct {
	// Optional: load bond fields from a preset YAML (e.g. examples/bonds/*.yaml).
	// If both BondFile and Bond are provided, Bond overrides BondFile.
	BondFile    string            `yaml:"bond_file"`
	Bond        BondConfig        `yaml:"bond"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
}

// BondConfig uses percentages for rates, as the dashboard inputs did.
type BondConfig struct {
	Name            string  `yaml:"name"`
	FaceValue       float64 `yaml:"face_value"`
	CouponRatePct   float64 `yaml:"coupon_rate_pct"`
	YieldPct        float64 `yaml:"ytm_pct"`
	YearsToMaturity int     `yaml:"years_to_maturity"`
	PaymentsPerYear int     `yaml:"payments_per_year"`
}

// SensitivityConfig is expressed in yield fractions (0.02 = 200bp).
type SensitivityConfig struct {
	HalfWidth float64 `yaml:"half_width"`
	Step      float64 `yaml:"step"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for listing presets that only carry part of a bond.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.BondFile != "" {
		bondPath := c.BondFile
		if !filepath.IsAbs(bondPath) {
			// Relative to the config file first, then to cwd.
			cand := filepath.Join(filepath.Dir(path), bondPath)
			if _, err := os.Stat(cand); err == nil {
				bondPath = cand
			}
		}
		loaded, err := LoadBondFile(bondPath)
		if err != nil {
			return nil, err
		}
		c.Bond = MergeBond(loaded, c.Bond)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Bond.ToSpec(); err != nil {
		return fmt.Errorf("bond config invalid: %w", err)
	}
	if c.Sensitivity.HalfWidth < 0 || c.Sensitivity.Step < 0 {
		return fmt.Errorf("sensitivity config invalid: %w: half_width and step must be >= 0", model.ErrInvalidSpec)
	}
	return nil
}

// ToSpec converts percentage inputs to a validated model.BondSpec.
func (b BondConfig) ToSpec() (model.BondSpec, error) {
	return model.NewBondSpec(
		b.FaceValue,
		b.CouponRatePct/100,
		b.YieldPct/100,
		b.YearsToMaturity,
		b.PaymentsPerYear,
	)
}

func (s SensitivityConfig) ToParams() valuation.SensitivityParams {
	return valuation.SensitivityParams{HalfWidth: s.HalfWidth, Step: s.Step}.WithDefaults()
}

type bondFileWrapper struct {
	Bond BondConfig `yaml:"bond"`
}

func LoadBondFile(path string) (BondConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BondConfig{}, err
	}
	var w bondFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BondConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Bond, nil
}

// MergeBond overlays non-zero fields from override onto base.
// A zero coupon or zero yield therefore cannot override a preset; set the
// preset itself to zero for that.
func MergeBond(base, override BondConfig) BondConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.FaceValue != 0 {
		out.FaceValue = override.FaceValue
	}
	if override.CouponRatePct != 0 {
		out.CouponRatePct = override.CouponRatePct
	}
	if override.YieldPct != 0 {
		out.YieldPct = override.YieldPct
	}
	if override.YearsToMaturity != 0 {
		out.YearsToMaturity = override.YearsToMaturity
	}
	if override.PaymentsPerYear != 0 {
		out.PaymentsPerYear = override.PaymentsPerYear
	}
	return out
}
