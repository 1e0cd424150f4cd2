package handlers

import (
	"net/http"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/services"

	"github.com/labstack/echo/v4"
)

// PropertyHandlers handles HTTP requests for property listings
type PropertyHandlers struct {
	propertyService services.PropertyServiceInterface
	managerService  services.ManagerServiceInterface
}

func NewPropertyHandlers(propertyService services.PropertyServiceInterface, managerService services.ManagerServiceInterface) *PropertyHandlers {
	return &PropertyHandlers{
		propertyService: propertyService,
		managerService:  managerService,
	}
}

// SearchProperties handles GET /properties. Query params are cleaned before
// filtering: empty values and the "any" wildcard are not forwarded.
func (h *PropertyHandlers) SearchProperties(c echo.Context) error {
	ctx := c.Request().Context()

	params := make(map[string]interface{})
	for key, values := range c.QueryParams() {
		if key == "amenities" {
			params[key] = values
			continue
		}
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	properties, err := h.propertyService.Search(ctx, params)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	return c.JSON(http.StatusOK, properties)
}

// GetProperty handles GET /properties/:id
func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	property, err := h.propertyService.GetByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, property)
}

// CreateProperty handles POST /properties (managers only). Photos arrive as
// multipart files and land in object storage before the row is written.
func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	manager, err := h.managerService.Current(ctx)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req struct {
		Name            string   `json:"name" form:"name"`
		Description     *string  `json:"description" form:"description"`
		PricePerMonth   float64  `json:"price_per_month" form:"price_per_month"`
		SecurityDeposit float64  `json:"security_deposit" form:"security_deposit"`
		ApplicationFee  float64  `json:"application_fee" form:"application_fee"`
		Beds            int      `json:"beds" form:"beds"`
		Baths           int      `json:"baths" form:"baths"`
		SquareFeet      int      `json:"square_feet" form:"square_feet"`
		PropertyType    string   `json:"property_type" form:"property_type"`
		Amenities       []string `json:"amenities" form:"amenities"`
		Address         string   `json:"address" form:"address"`
		City            string   `json:"city" form:"city"`
		State           string   `json:"state" form:"state"`
		Country         string   `json:"country" form:"country"`
		PostalCode      string   `json:"postal_code" form:"postal_code"`
		Latitude        float64  `json:"latitude" form:"latitude"`
		Longitude       float64  `json:"longitude" form:"longitude"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	property := &models.Property{
		ManagerID:       manager.ID,
		Name:            req.Name,
		Description:     req.Description,
		PricePerMonth:   req.PricePerMonth,
		SecurityDeposit: req.SecurityDeposit,
		ApplicationFee:  req.ApplicationFee,
		Beds:            req.Beds,
		Baths:           req.Baths,
		SquareFeet:      req.SquareFeet,
		PropertyType:    req.PropertyType,
		Amenities:       req.Amenities,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		PostalCode:      req.PostalCode,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	created, err := h.propertyService.Create(ctx, property)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	// Multipart photo uploads are optional.
	if form, err := c.MultipartForm(); err == nil && form != nil {
		var keys []string
		for _, file := range form.File["photos"] {
			src, err := file.Open()
			if err != nil {
				return common.SendServerError(c, "Failed to read uploaded photo")
			}
			key, err := h.propertyService.UploadPhoto(ctx, created.ID, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
			src.Close()
			if err != nil {
				return common.SendServerError(c, "Failed to store uploaded photo")
			}
			keys = append(keys, key)
		}
		if len(keys) > 0 {
			created.PhotoKeys = keys
			if err := h.propertyService.Update(ctx, created); err != nil {
				return common.SendDomainError(c, err)
			}
		}
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateProperty handles PUT /properties/:id (managers only). Properties are
// never hard-deleted; managers close a listing through the closed flag.
func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	manager, err := h.managerService.Current(ctx)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	property, err := h.propertyService.GetByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if property.ManagerID != manager.ID {
		return common.SendForbiddenError(c)
	}

	var req struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		PricePerMonth   *float64 `json:"price_per_month"`
		SecurityDeposit *float64 `json:"security_deposit"`
		ApplicationFee  *float64 `json:"application_fee"`
		Beds            *int     `json:"beds"`
		Baths           *int     `json:"baths"`
		SquareFeet      *int     `json:"square_feet"`
		PropertyType    *string  `json:"property_type"`
		Amenities       []string `json:"amenities"`
		Closed          *bool    `json:"closed"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Description != nil {
		property.Description = req.Description
	}
	if req.PricePerMonth != nil {
		property.PricePerMonth = *req.PricePerMonth
	}
	if req.SecurityDeposit != nil {
		property.SecurityDeposit = *req.SecurityDeposit
	}
	if req.ApplicationFee != nil {
		property.ApplicationFee = *req.ApplicationFee
	}
	if req.Beds != nil {
		property.Beds = *req.Beds
	}
	if req.Baths != nil {
		property.Baths = *req.Baths
	}
	if req.SquareFeet != nil {
		property.SquareFeet = *req.SquareFeet
	}
	if req.PropertyType != nil {
		property.PropertyType = *req.PropertyType
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	if req.Closed != nil {
		property.Closed = *req.Closed
	}

	if err := h.propertyService.Update(ctx, property); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, property)
}
