// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/application/usecase/billrule"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/integration/entrypoint/dto"
)

// BillRuleController handles bill rule endpoints.
type BillRuleController struct {
	createUseCase *billrule.CreateRuleUseCase
	listUseCase   *billrule.ListRulesUseCase
	getUseCase    *billrule.GetRuleUseCase
	updateUseCase *billrule.UpdateRuleUseCase
}

// NewBillRuleController creates a new bill rule controller instance.
func NewBillRuleController(
	createUseCase *billrule.CreateRuleUseCase,
	listUseCase *billrule.ListRulesUseCase,
	getUseCase *billrule.GetRuleUseCase,
	updateUseCase *billrule.UpdateRuleUseCase,
) *BillRuleController {
	return &BillRuleController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Create handles POST /bill-rules requests.
func (c *BillRuleController) Create(ctx *gin.Context) {
	var req dto.CreateBillRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidRuleAmount),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeRuleCategoryNotFound),
		})
		return
	}

	input := billrule.CreateRuleInput{
		Name:       req.Name,
		Amount:     amount,
		Currency:   req.Currency,
		Frequency:  entity.BillFrequency(req.Frequency),
		CategoryID: categoryID,
		IsActive:   req.IsActive,
		StartDate:  req.StartDate,
		AutoNext:   req.AutoNext,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillRuleError(ctx, err)
		return
	}

	response := dto.CreateBillRuleResponse{Rule: dto.ToBillRuleResponse(output.Rule)}
	if output.FirstBill != nil {
		first := dto.ToBillResponse(output.FirstBill)
		response.FirstBill = &first
	}
	ctx.JSON(http.StatusCreated, response)
}

// List handles GET /bill-rules requests.
func (c *BillRuleController) List(ctx *gin.Context) {
	input := billrule.ListRulesInput{
		ActiveOnly: ctx.Query("active") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve bill rules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillRuleListResponse(output.Rules))
}

// Get handles GET /bill-rules/:id requests.
func (c *BillRuleController) Get(ctx *gin.Context) {
	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), billrule.GetRuleInput{RuleID: ruleID})
	if err != nil {
		c.handleBillRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillRuleResponse(output.Rule))
}

// Update handles PATCH /bill-rules/:id requests.
func (c *BillRuleController) Update(ctx *gin.Context) {
	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	var req dto.UpdateBillRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := billrule.UpdateRuleInput{
		RuleID:    ruleID,
		Name:      req.Name,
		Currency:  req.Currency,
		IsActive:  req.IsActive,
		StartDate: req.StartDate,
		AutoNext:  req.AutoNext,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
				Code:  string(domainerror.ErrCodeInvalidRuleAmount),
			})
			return
		}
		input.Amount = &amount
	}

	if req.Frequency != nil {
		frequency := entity.BillFrequency(*req.Frequency)
		input.Frequency = &frequency
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
				Code:  string(domainerror.ErrCodeRuleCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillRuleError(ctx, err)
		return
	}

	// The use case treats an unknown id as a no-op; surface it as 404 here.
	if output.Rule == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Bill rule not found",
			Code:  string(domainerror.ErrCodeBillRuleNotFound),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillRuleResponse(output.Rule))
}

// handleBillRuleError handles rule errors and returns appropriate HTTP responses.
func (c *BillRuleController) handleBillRuleError(ctx *gin.Context, err error) {
	var ruleErr *domainerror.BillRuleError
	if errors.As(err, &ruleErr) {
		statusCode := c.getStatusCodeForBillRuleError(ruleErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: ruleErr.Message,
			Code:  string(ruleErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBillRuleError maps rule error codes to HTTP status codes.
func (c *BillRuleController) getStatusCodeForBillRuleError(code domainerror.BillRuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeBillRuleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidRuleAmount,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeRuleCategoryNotFound,
		domainerror.ErrCodeRuleCategoryNotExpense,
		domainerror.ErrCodeMissingRuleFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
