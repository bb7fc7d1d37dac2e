package model

// Frequency names the conventional coupon frequencies.
// Keep these values stable; they are used in CLI and API output.
type Frequency string

const (
	FrequencyAnnual     Frequency = "ANNUAL"
	FrequencySemiAnnual Frequency = "SEMI_ANNUAL"
	FrequencyQuarterly  Frequency = "QUARTERLY"
	FrequencyMonthly    Frequency = "MONTHLY"
	FrequencyCustom     Frequency = "CUSTOM"
)

func FrequencyFromPaymentsPerYear(n int) Frequency {
	switch n {
	case 1:
		return FrequencyAnnual
	case 2:
		return FrequencySemiAnnual
	case 4:
		return FrequencyQuarterly
	case 12:
		return FrequencyMonthly
	default:
		return FrequencyCustom
	}
}
