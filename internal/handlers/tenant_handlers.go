package handlers

import (
	"net/http"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles HTTP requests for tenant accounts
type TenantHandlers struct {
	tenantService services.TenantServiceInterface
}

func NewTenantHandlers(tenantService services.TenantServiceInterface) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// CreateTenant handles POST /tenants. Called on first login to mirror the
// identity-provider account into the database.
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
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

	tenant, err := h.tenantService.Create(ctx, &models.Tenant{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

// GetTenant handles GET /tenants/:cognitoId
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	tenant, err := h.tenantService.GetByCognitoID(c.Request().Context(), c.Param("cognitoId"))
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// UpdateTenant handles PUT /tenants/:cognitoId
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantService.Update(ctx, c.Param("cognitoId"), req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// AddFavorite handles POST /tenants/:cognitoId/favorites/:propertyId
func (h *TenantHandlers) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateUUID(c.Param("propertyId"), "propertyId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.tenantService.AddFavorite(ctx, c.Param("cognitoId"), propertyID); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /tenants/:cognitoId/favorites/:propertyId
func (h *TenantHandlers) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateUUID(c.Param("propertyId"), "propertyId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.tenantService.RemoveFavorite(ctx, c.Param("cognitoId"), propertyID); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFavorites handles GET /tenants/:cognitoId/favorites
func (h *TenantHandlers) ListFavorites(c echo.Context) error {
	properties, err := h.tenantService.ListFavorites(c.Request().Context(), c.Param("cognitoId"))
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	return c.JSON(http.StatusOK, properties)
}

// ListCurrentResidences handles GET /tenants/:cognitoId/current-residences
func (h *TenantHandlers) ListCurrentResidences(c echo.Context) error {
	properties, err := h.tenantService.CurrentResidences(c.Request().Context(), c.Param("cognitoId"))
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	return c.JSON(http.StatusOK, properties)
}
