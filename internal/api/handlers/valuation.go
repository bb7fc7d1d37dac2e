package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"bond-valuation/internal/api/models"
	"bond-valuation/internal/config"
	"bond-valuation/internal/display"
	"bond-valuation/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ValuationHandler handles pricing requests
type ValuationHandler struct {
	engine  *valuation.Engine
	bondDir string
	logger  logrus.FieldLogger
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(engine *valuation.Engine, bondDir string, logger logrus.FieldLogger) *ValuationHandler {
	return &ValuationHandler{engine: engine, bondDir: bondDir, logger: logger}
}

// Value handles POST /api/v1/valuation
func (h *ValuationHandler) Value(c *gin.Context) {
	var req models.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bond, v, err := h.value(req)
	if err != nil {
		h.logger.WithError(err).WithField("bond", req.Bond).Debug("valuation rejected")
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildResponse(bond, v, req.IncludeCashFlows))
}

// Compare handles POST /api/v1/valuation/compare
func (h *ValuationHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	baseBond, baseVal, err := h.value(req.Base)
	if err != nil {
		abortWithError(c, err)
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		merged := config.MergeBond(baseBond, toBondConfig(variation.Bond))
		row := models.ComparisonResult{Name: variation.Name, Bond: toBondInput(merged)}

		// Variations are reported, not dropped, when they fail.
		v, err := h.valueBond(merged, req.Base.Sensitivity)
		if err != nil {
			_, detail := errorDetail(err)
			row.Error = &detail
			comparison = append(comparison, row)
			continue
		}

		res := toResult(v.Result)
		summary := display.Summarize(v.Result)
		change := v.Result.Price - baseVal.Result.Price
		row.Result = &res
		row.Display = &summary
		row.PriceChange = &change
		comparison = append(comparison, row)
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Base:       buildResponse(baseBond, baseVal, false),
		Comparison: comparison,
	})
}

// Sensitivity handles GET /api/v1/sensitivity
func (h *ValuationHandler) Sensitivity(c *gin.Context) {
	var q models.SensitivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	bond := config.BondConfig{
		FaceValue:       q.FaceValue,
		CouponRatePct:   q.CouponRatePct,
		YieldPct:        q.YieldPct,
		YearsToMaturity: q.YearsToMaturity,
		PaymentsPerYear: q.PaymentsPerYear,
	}
	spec, err := bond.ToSpec()
	if err != nil {
		abortWithError(c, err)
		return
	}
	params := valuation.SensitivityParams{HalfWidth: q.HalfWidth, Step: q.Step}.WithDefaults()
	rows, err := h.engine.SensitivityTable(spec, spec.YieldToMaturity, params)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SensitivityResponse{Rows: toSensitivityRows(rows)})
}

func (h *ValuationHandler) value(req models.ValuationRequest) (config.BondConfig, *valuation.Valuation, error) {
	bond, err := h.resolveBond(req.BondFile, toBondConfig(req.Bond))
	if err != nil {
		return bond, nil, err
	}
	v, err := h.valueBond(bond, req.Sensitivity)
	return bond, v, err
}

func (h *ValuationHandler) valueBond(bond config.BondConfig, s models.SensitivityInput) (*valuation.Valuation, error) {
	spec, err := bond.ToSpec()
	if err != nil {
		return nil, err
	}
	params := valuation.SensitivityParams{HalfWidth: s.HalfWidth, Step: s.Step}.WithDefaults()
	return h.engine.Value(spec, params)
}

// resolveBond merges request fields onto a preset from bondDir, if one is named.
func (h *ValuationHandler) resolveBond(presetID string, override config.BondConfig) (config.BondConfig, error) {
	if presetID == "" {
		return override, nil
	}
	if filepath.Base(presetID) != presetID || presetID == "." || presetID == ".." {
		return override, errBadPresetID
	}
	path := filepath.Join(h.bondDir, presetID+".yaml")
	preset, err := config.LoadBondFile(path)
	if err != nil {
		return override, fmt.Errorf("bond preset %q: %w", presetID, err)
	}
	return config.MergeBond(preset, override), nil
}
