// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billfold/backend/internal/application/usecase/bill"
	"github.com/billfold/backend/internal/integration/entrypoint/dto"
)

// SweepController exposes the reconciliation sweeps over HTTP so operators
// and schedulers can trigger them on demand. Both sweeps are idempotent.
type SweepController struct {
	checkOverdueUseCase    *bill.CheckOverdueUseCase
	ensureGeneratedUseCase *bill.EnsureGeneratedUseCase
}

// NewSweepController creates a new sweep controller instance.
func NewSweepController(
	checkOverdueUseCase *bill.CheckOverdueUseCase,
	ensureGeneratedUseCase *bill.EnsureGeneratedUseCase,
) *SweepController {
	return &SweepController{
		checkOverdueUseCase:    checkOverdueUseCase,
		ensureGeneratedUseCase: ensureGeneratedUseCase,
	}
}

// Overdue handles POST /sweeps/overdue requests.
func (c *SweepController) Overdue(ctx *gin.Context) {
	output, err := c.checkOverdueUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Overdue sweep failed",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SweepResponse{
		MarkedOverdue: output.MarkedOverdue,
		Generated:     output.Generated,
	})
}

// Generate handles POST /sweeps/generate requests.
func (c *SweepController) Generate(ctx *gin.Context) {
	output, err := c.ensureGeneratedUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Generation sweep failed",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SweepResponse{
		Generated: output.Generated,
	})
}
