// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/application/usecase/bill"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/integration/entrypoint/dto"
)

// BillController handles bill instance endpoints.
type BillController struct {
	createUseCase        *bill.CreateBillUseCase
	listUseCase          *bill.ListBillsUseCase
	getUseCase           *bill.GetBillUseCase
	markAsPaidUseCase    *bill.MarkAsPaidUseCase
	recordPaymentUseCase *bill.RecordPaymentUseCase
}

// NewBillController creates a new bill controller instance.
func NewBillController(
	createUseCase *bill.CreateBillUseCase,
	listUseCase *bill.ListBillsUseCase,
	getUseCase *bill.GetBillUseCase,
	markAsPaidUseCase *bill.MarkAsPaidUseCase,
	recordPaymentUseCase *bill.RecordPaymentUseCase,
) *BillController {
	return &BillController{
		createUseCase:        createUseCase,
		listUseCase:          listUseCase,
		getUseCase:           getUseCase,
		markAsPaidUseCase:    markAsPaidUseCase,
		recordPaymentUseCase: recordPaymentUseCase,
	}
}

// Create handles POST /bills requests for manual one-off bills.
func (c *BillController) Create(ctx *gin.Context) {
	var req dto.CreateBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBillFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidBillAmount),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeBillCategoryNotFound),
		})
		return
	}

	input := bill.CreateBillInput{
		Name:       req.Name,
		Amount:     amount,
		Currency:   req.Currency,
		DueDate:    req.DueDate,
		CategoryID: categoryID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBillResponse(output.Bill))
}

// List handles GET /bills requests.
func (c *BillController) List(ctx *gin.Context) {
	var input bill.ListBillsInput
	if ruleIDStr := ctx.Query("rule_id"); ruleIDStr != "" {
		ruleID, err := uuid.Parse(ruleIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid rule ID format",
			})
			return
		}
		input.RuleID = &ruleID
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve bills",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(output.Bills))
}

// Get handles GET /bills/:id requests.
func (c *BillController) Get(ctx *gin.Context) {
	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid bill ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), bill.GetBillInput{BillID: billID})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill))
}

// Pay handles POST /bills/:id/pay requests, marking the bill fully paid.
func (c *BillController) Pay(ctx *gin.Context) {
	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid bill ID format",
		})
		return
	}

	// The body is optional; an empty one means pay without a linked
	// transaction.
	var req dto.PayBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := bill.MarkAsPaidInput{BillID: billID}
	if req.TransactionID != nil {
		transactionID, err := uuid.Parse(*req.TransactionID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format",
			})
			return
		}
		input.TransactionID = &transactionID
	}

	output, err := c.markAsPaidUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	// The use case treats an unknown id as a no-op; surface it as 404 here.
	if output.Bill == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Bill not found",
			Code:  string(domainerror.ErrCodeBillNotFound),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill))
}

// RecordPayment handles POST /bills/:id/payments requests.
func (c *BillController) RecordPayment(ctx *gin.Context) {
	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid bill ID format",
		})
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidBillAmount),
		})
		return
	}

	input := bill.RecordPaymentInput{BillID: billID, Amount: amount}
	if req.TransactionID != nil {
		transactionID, err := uuid.Parse(*req.TransactionID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format",
			})
			return
		}
		input.TransactionID = &transactionID
	}

	output, err := c.recordPaymentUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	if output.Bill == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Bill not found",
			Code:  string(domainerror.ErrCodeBillNotFound),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill))
}

// handleBillError handles bill errors and returns appropriate HTTP responses.
func (c *BillController) handleBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.BillError
	if errors.As(err, &billErr) {
		statusCode := c.getStatusCodeForBillError(billErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: billErr.Message,
			Code:  string(billErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBillError maps bill error codes to HTTP status codes.
func (c *BillController) getStatusCodeForBillError(code domainerror.BillErrorCode) int {
	switch code {
	case domainerror.ErrCodeBillNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBillAlreadyScheduled:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidBillAmount,
		domainerror.ErrCodeBillCategoryNotFound,
		domainerror.ErrCodeMissingBillFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
