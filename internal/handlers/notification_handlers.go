package handlers

import (
	"net/http"

	"rentiva/internal/common"
	"rentiva/internal/jobs"
	"rentiva/internal/repositories"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// batchSize bounds each tenant page while fanning out a broadcast.
const batchSize = 200

// NotificationHandlers enqueues email dispatch tasks (managers only).
// Delivery happens in the asynq worker, not in the request path.
type NotificationHandlers struct {
	asynqClient *asynq.Client
	tenantRepo  repositories.TenantRepository
}

func NewNotificationHandlers(asynqClient *asynq.Client, tenantRepo repositories.TenantRepository) *NotificationHandlers {
	return &NotificationHandlers{
		asynqClient: asynqClient,
		tenantRepo:  tenantRepo,
	}
}

// EmailAll handles POST /notifications/email/all
func (h *NotificationHandlers) EmailAll(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Subject, "subject", 255); err != nil {
		return common.SendValidationError(c, "subject", err.Error())
	}
	if err := common.ValidateRequiredString(req.Body, "body", 100000); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}

	enqueued := 0
	for offset := 0; ; offset += batchSize {
		tenants, err := h.tenantRepo.List(ctx, batchSize, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to list recipients")
		}
		if len(tenants) == 0 {
			break
		}
		for _, tenant := range tenants {
			task, err := jobs.NewEmailSendTask(tenant.Email, req.Subject, req.Body)
			if err != nil {
				return common.SendServerError(c, "Failed to build email task")
			}
			if _, err := h.asynqClient.EnqueueContext(ctx, task); err != nil {
				return common.SendServerError(c, "Failed to enqueue email")
			}
			enqueued++
		}
	}

	return c.JSON(http.StatusAccepted, map[string]int{"enqueued": enqueued})
}

// EmailUser handles POST /notifications/email/user
func (h *NotificationHandlers) EmailUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Recipient string `json:"recipient"`
		Subject   string `json:"subject"`
		Body      string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Recipient, "recipient", 255); err != nil {
		return common.SendValidationError(c, "recipient", err.Error())
	}
	if err := common.ValidateRequiredString(req.Subject, "subject", 255); err != nil {
		return common.SendValidationError(c, "subject", err.Error())
	}

	task, err := jobs.NewEmailSendTask(req.Recipient, req.Subject, req.Body)
	if err != nil {
		return common.SendServerError(c, "Failed to build email task")
	}
	if _, err := h.asynqClient.EnqueueContext(ctx, task); err != nil {
		return common.SendServerError(c, "Failed to enqueue email")
	}

	return c.JSON(http.StatusAccepted, map[string]int{"enqueued": 1})
}
