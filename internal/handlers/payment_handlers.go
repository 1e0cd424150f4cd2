package handlers

import (
	"fmt"
	"net/http"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers handles HTTP requests for payments and receipts
type PaymentHandlers struct {
	paymentService services.PaymentServiceInterface
	tenantService  services.TenantServiceInterface
}

func NewPaymentHandlers(paymentService services.PaymentServiceInterface, tenantService services.TenantServiceInterface) *PaymentHandlers {
	return &PaymentHandlers{
		paymentService: paymentService,
		tenantService:  tenantService,
	}
}

// RecordPayment handles POST /payments (tenants only)
func (h *PaymentHandlers) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		LeaseID     string  `json:"lease_id"`
		AmountDue   float64 `json:"amount_due"`
		AmountPaid  float64 `json:"amount_paid"`
		DueDate     string  `json:"due_date"`
		PaymentDate string  `json:"payment_date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	leaseID, err := common.ValidateUUID(req.LeaseID, "lease_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	dueDate, err := common.ParseDate(req.DueDate, "due_date")
	if err != nil {
		return common.SendValidationError(c, "due_date", err.Error())
	}
	paymentDate, err := common.ParseDate(req.PaymentDate, "payment_date")
	if err != nil {
		return common.SendValidationError(c, "payment_date", err.Error())
	}

	payment, err := h.paymentService.Record(ctx, services.RecordPaymentInput{
		LeaseID:     leaseID,
		AmountDue:   req.AmountDue,
		AmountPaid:  req.AmountPaid,
		DueDate:     dueDate,
		PaymentDate: paymentDate,
	})
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// ListPaymentsForTenant handles GET /payments/tenant/:cognitoId
func (h *PaymentHandlers) ListPaymentsForTenant(c echo.Context) error {
	ctx := c.Request().Context()

	tenant, err := h.tenantService.GetByCognitoID(ctx, c.Param("cognitoId"))
	if err != nil {
		return common.SendDomainError(c, err)
	}

	payments, err := h.paymentService.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

// ListPaymentsForLease handles GET /leases/:id/payments
func (h *PaymentHandlers) ListPaymentsForLease(c echo.Context) error {
	ctx := c.Request().Context()

	leaseID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	payments, err := h.paymentService.ListByLease(ctx, leaseID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

// DownloadReceipt handles GET /payments/:id/receipt. Streams the stored PDF;
// a payment without a receipt is a 404.
func (h *PaymentHandlers) DownloadReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	reader, size, err := h.paymentService.DownloadReceipt(ctx, paymentID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=receipt_%s.pdf`, paymentID))
	if size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, fmt.Sprintf("%d", size))
	}
	return c.Stream(http.StatusOK, "application/pdf", reader)
}
