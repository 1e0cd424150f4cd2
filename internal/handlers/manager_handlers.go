package handlers

import (
	"net/http"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/services"

	"github.com/labstack/echo/v4"
)

// ManagerHandlers handles HTTP requests for manager accounts
type ManagerHandlers struct {
	managerService  services.ManagerServiceInterface
	propertyService services.PropertyServiceInterface
}

func NewManagerHandlers(managerService services.ManagerServiceInterface, propertyService services.PropertyServiceInterface) *ManagerHandlers {
	return &ManagerHandlers{
		managerService:  managerService,
		propertyService: propertyService,
	}
}

// CreateManager handles POST /managers
func (h *ManagerHandlers) CreateManager(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CognitoID   string  `json:"cognito_id"`
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	manager, err := h.managerService.Create(ctx, &models.Manager{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, manager)
}

// GetManager handles GET /managers/:cognitoId
func (h *ManagerHandlers) GetManager(c echo.Context) error {
	manager, err := h.managerService.GetByCognitoID(c.Request().Context(), c.Param("cognitoId"))
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, manager)
}

// UpdateManager handles PUT /managers/:cognitoId
func (h *ManagerHandlers) UpdateManager(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	manager, err := h.managerService.Update(ctx, c.Param("cognitoId"), req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, manager)
}

// ListManagerProperties handles GET /managers/:cognitoId/properties
func (h *ManagerHandlers) ListManagerProperties(c echo.Context) error {
	ctx := c.Request().Context()

	manager, err := h.managerService.GetByCognitoID(ctx, c.Param("cognitoId"))
	if err != nil {
		return common.SendDomainError(c, err)
	}

	properties, err := h.propertyService.ListByManager(ctx, manager.ID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	return c.JSON(http.StatusOK, properties)
}
