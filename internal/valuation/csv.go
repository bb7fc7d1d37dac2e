package valuation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"bond-valuation/internal/model"
)

func WriteSensitivityCSV(path string, rows []model.SensitivityRow) error {
	return writeFile(path, func(w io.Writer) error { return EncodeSensitivityCSV(w, rows) })
}

func WriteCashFlowCSV(path string, flows []model.PeriodCashFlow, factors []float64) error {
	return writeFile(path, func(w io.Writer) error { return EncodeCashFlowCSV(w, flows, factors) })
}

func EncodeSensitivityCSV(out io.Writer, rows []model.SensitivityRow) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"yield", "price"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{fmtFloat(r.Yield), fmtFloat(r.Price)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// EncodeCashFlowCSV writes one row per period. factors may be nil, in which
// case the discount columns are left empty.
func EncodeCashFlowCSV(out io.Writer, flows []model.PeriodCashFlow, factors []float64) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"period", "amount", "discount_factor", "present_value"}); err != nil {
		return err
	}
	for i, cf := range flows {
		row := []string{strconv.Itoa(cf.Period), fmtFloat(cf.Amount), "", ""}
		if i < len(factors) {
			row[2] = fmtFloat(factors[i])
			row[3] = fmtFloat(cf.Amount / factors[i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
