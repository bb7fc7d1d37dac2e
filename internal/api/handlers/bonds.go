package handlers

import (
	"net/http"
	"path/filepath"

	"bond-valuation/internal/analysis"
	"bond-valuation/internal/api/models"
	"bond-valuation/internal/config"
	"bond-valuation/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BondHandler lists bond presets stored as YAML files
type BondHandler struct {
	engine  *valuation.Engine
	bondDir string
	logger  logrus.FieldLogger
}

// NewBondHandler creates a new bond handler
func NewBondHandler(engine *valuation.Engine, bondDir string, logger logrus.FieldLogger) *BondHandler {
	// Convert to absolute path for reliability
	if abs, err := filepath.Abs(bondDir); err == nil {
		bondDir = abs
	}
	logger.WithField("dir", bondDir).Info("using bond preset directory")
	return &BondHandler{engine: engine, bondDir: bondDir, logger: logger}
}

// ListBonds handles GET /api/v1/bonds
func (h *BondHandler) ListBonds(c *gin.Context) {
	presets, err := config.ListPresets(h.bondDir)
	if err != nil {
		// A missing directory just means there are no presets.
		h.logger.WithError(err).WithField("dir", h.bondDir).Warn("failed to read bond presets")
	}
	c.JSON(http.StatusOK, gin.H{"bonds": presetInfos(presets)})
}

// RankBonds handles GET /api/v1/bonds/rank
func (h *BondHandler) RankBonds(c *gin.Context) {
	presets, err := config.ListPresets(h.bondDir)
	if err != nil {
		h.logger.WithError(err).WithField("dir", h.bondDir).Warn("failed to read bond presets")
	}

	bonds := make([]analysis.NamedBond, 0, len(presets))
	skipped := map[string]string{}
	for _, p := range presets {
		spec, err := p.Bond.ToSpec()
		if err != nil {
			skipped[p.ID] = err.Error()
			continue
		}
		bonds = append(bonds, analysis.NamedBond{ID: p.ID, Name: p.Bond.Name, Spec: spec})
	}

	ranked, failed := analysis.RankByRateRisk(h.engine, bonds)
	for id, err := range failed {
		skipped[id] = err.Error()
	}

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:                  i + 1,
			ID:                    r.ID,
			Name:                  r.Name,
			Result:                toResult(r.Result),
			ModifiedDurationYears: r.ModifiedDurationYears,
			ConvexityYears:        r.ConvexityYears,
			ShockDownPct:          r.ShockDownPct,
			ShockUpPct:            r.ShockUpPct,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings, Skipped: skipped})
}

func presetInfos(presets []config.Preset) []models.BondInfo {
	out := make([]models.BondInfo, len(presets))
	for i, p := range presets {
		out[i] = models.BondInfo{
			ID:   p.ID,
			Name: p.Bond.Name,
			File: p.File,
			Bond: toBondInput(p.Bond),
		}
	}
	return out
}
