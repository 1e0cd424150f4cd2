package handlers

import (
	"net/http"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/services"

	"github.com/labstack/echo/v4"
)

// ApplicationHandlers handles HTTP requests for rental applications
type ApplicationHandlers struct {
	applicationService services.ApplicationServiceInterface
	tenantService      services.TenantServiceInterface
	managerService     services.ManagerServiceInterface
}

func NewApplicationHandlers(applicationService services.ApplicationServiceInterface, tenantService services.TenantServiceInterface, managerService services.ManagerServiceInterface) *ApplicationHandlers {
	return &ApplicationHandlers{
		applicationService: applicationService,
		tenantService:      tenantService,
		managerService:     managerService,
	}
}

// SubmitApplication handles POST /applications (tenants only)
func (h *ApplicationHandlers) SubmitApplication(c echo.Context) error {
	ctx := c.Request().Context()

	tenant, err := h.tenantService.Current(ctx)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req struct {
		PropertyID string  `json:"property_id"`
		Message    *string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	propertyID, err := common.ValidateUUID(req.PropertyID, "property_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	application, err := h.applicationService.Submit(ctx, propertyID, tenant.ID, req.Message)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, application)
}

// DecideApplication handles PUT /applications/:id/status (managers only)
func (h *ApplicationHandlers) DecideApplication(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	application, err := h.applicationService.Decide(ctx, id, req.Status)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, application)
}

// ListApplications handles GET /applications?userId=&userType=
func (h *ApplicationHandlers) ListApplications(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	userType := c.QueryParam("userType")

	var applications []*models.Application
	switch userType {
	case common.RoleTenant:
		tenant, err := h.tenantService.GetByCognitoID(ctx, userID)
		if err != nil {
			return common.SendDomainError(c, err)
		}
		applications, err = h.applicationService.ListByTenant(ctx, tenant.ID)
		if err != nil {
			return common.SendDomainError(c, err)
		}
	case common.RoleManager:
		manager, err := h.managerService.GetByCognitoID(ctx, userID)
		if err != nil {
			return common.SendDomainError(c, err)
		}
		applications, err = h.applicationService.ListByManager(ctx, manager.ID)
		if err != nil {
			return common.SendDomainError(c, err)
		}
	default:
		return common.SendValidationError(c, "userType", "userType must be tenant or manager")
	}

	if applications == nil {
		applications = []*models.Application{}
	}
	return c.JSON(http.StatusOK, applications)
}
