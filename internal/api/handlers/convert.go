package handlers

import (
	"errors"
	"net/http"
	"os"

	"bond-valuation/internal/api/models"
	"bond-valuation/internal/config"
	"bond-valuation/internal/display"
	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"

	"github.com/gin-gonic/gin"
)

var errBadPresetID = errors.New("bond_file must be a preset id, not a path")

func toBondConfig(in models.BondInput) config.BondConfig {
	return config.BondConfig{
		Name:            in.Name,
		FaceValue:       in.FaceValue,
		CouponRatePct:   in.CouponRatePct,
		YieldPct:        in.YieldPct,
		YearsToMaturity: in.YearsToMaturity,
		PaymentsPerYear: in.PaymentsPerYear,
	}
}

func toBondInput(b config.BondConfig) models.BondInput {
	return models.BondInput{
		Name:            b.Name,
		FaceValue:       b.FaceValue,
		CouponRatePct:   b.CouponRatePct,
		YieldPct:        b.YieldPct,
		YearsToMaturity: b.YearsToMaturity,
		PaymentsPerYear: b.PaymentsPerYear,
	}
}

func toResult(r model.ValuationResult) models.ValuationResult {
	return models.ValuationResult{
		Price:            r.Price,
		MacaulayDuration: r.MacaulayDuration,
		ModifiedDuration: r.ModifiedDuration,
		Convexity:        r.Convexity,
	}
}

func toSensitivityRows(rows []model.SensitivityRow) []models.SensitivityRow {
	formatted := display.Table(rows)
	out := make([]models.SensitivityRow, len(rows))
	for i, r := range rows {
		out[i] = models.SensitivityRow{
			Yield:        r.Yield,
			YieldPct:     formatted[i].YieldPct,
			Price:        r.Price,
			PriceDisplay: formatted[i].Price,
		}
	}
	return out
}

func buildResponse(bond config.BondConfig, v *valuation.Valuation, includeCashFlows bool) models.ValuationResponse {
	resp := models.ValuationResponse{
		Bond: models.BondEcho{
			BondInput:    toBondInput(bond),
			Frequency:    string(model.FrequencyFromPaymentsPerYear(v.Spec.PaymentsPerYear)),
			PeriodCount:  v.Spec.PeriodCount(),
			PeriodCoupon: v.Spec.PeriodCoupon(),
			PeriodYield:  v.Spec.PeriodYield(),
		},
		Result:      toResult(v.Result),
		Display:     display.Summarize(v.Result),
		Sensitivity: toSensitivityRows(v.Table),
	}
	if includeCashFlows {
		resp.CashFlows = make([]models.CashFlow, len(v.CashFlows))
		for i, cf := range v.CashFlows {
			df := v.DiscountFactors[i]
			resp.CashFlows[i] = models.CashFlow{
				Period:         cf.Period,
				Amount:         cf.Amount,
				DiscountFactor: df,
				PresentValue:   cf.Amount / df,
			}
		}
	}
	return resp
}

// errorDetail maps engine and preset errors onto the API error envelope.
func errorDetail(err error) (int, models.ErrorDetail) {
	switch {
	case errors.Is(err, model.ErrInvalidSpec):
		return http.StatusUnprocessableEntity, models.ErrorDetail{Code: "INVALID_SPEC", Message: err.Error()}
	case errors.Is(err, errBadPresetID):
		return http.StatusBadRequest, models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()}
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound, models.ErrorDetail{Code: "PRESET_NOT_FOUND", Message: err.Error()}
	default:
		return http.StatusInternalServerError, models.ErrorDetail{Code: "VALUATION_ERROR", Message: err.Error()}
	}
}

func abortWithError(c *gin.Context, err error) {
	status, detail := errorDetail(err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
