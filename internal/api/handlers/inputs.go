package handlers

import (
	"net/http"

	"bond-valuation/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Frequencies offered by the dashboard form; monthly is accepted but not listed.
var dashboardFrequencies = []int{1, 2, 4}

// ListInputs handles GET /api/v1/inputs. It describes the form a client
// should render; the engine itself accepts any valid spec.
func ListInputs(c *gin.Context) {
	inputs := []models.InputInfo{
		{
			Name:        "face_value",
			Type:        "float",
			Description: "Principal repaid at maturity",
			Min:         0.01,
			Default:     100.0,
		},
		{
			Name:        "coupon_rate_pct",
			Type:        "float",
			Description: "Annual coupon rate in percent of face value",
			Min:         0.0,
			Max:         15.0,
			Default:     6.0,
		},
		{
			Name:        "ytm_pct",
			Type:        "float",
			Description: "Annual yield to maturity in percent",
			Min:         0.0,
			Max:         15.0,
			Default:     5.0,
		},
		{
			Name:        "years_to_maturity",
			Type:        "int",
			Description: "Whole years until the face value is repaid",
			Min:         1,
			Max:         30,
			Default:     5,
		},
		{
			Name:        "payments_per_year",
			Type:        "choice",
			Description: "Coupon payments per year",
			Choices:     dashboardFrequencies,
			Default:     2,
		},
	}

	c.JSON(http.StatusOK, gin.H{"inputs": inputs})
}
