package handlers

import (
	"net/http"
	"strconv"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/services"

	"github.com/labstack/echo/v4"
)

// LeaseHandlers handles HTTP requests for leases
type LeaseHandlers struct {
	leaseService services.LeaseServiceInterface
}

func NewLeaseHandlers(leaseService services.LeaseServiceInterface) *LeaseHandlers {
	return &LeaseHandlers{leaseService: leaseService}
}

// ListLeases handles GET /leases (managers only)
func (h *LeaseHandlers) ListLeases(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	leases, err := h.leaseService.List(ctx, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if leases == nil {
		leases = []*models.Lease{}
	}
	return c.JSON(http.StatusOK, leases)
}

// GetLease handles GET /leases/:id
func (h *LeaseHandlers) GetLease(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	lease, err := h.leaseService.GetByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, lease)
}

// ListLeasesForProperty handles GET /properties/:id/leases
func (h *LeaseHandlers) ListLeasesForProperty(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	leases, err := h.leaseService.ListByProperty(ctx, propertyID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if leases == nil {
		leases = []*models.Lease{}
	}
	return c.JSON(http.StatusOK, leases)
}
