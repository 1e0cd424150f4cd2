package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"rentiva/internal/caching"
	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const propertyCacheTTL = 10 * time.Minute

type PropertyServiceInterface interface {
	Create(ctx context.Context, property *models.Property) (*models.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Search(ctx context.Context, params map[string]interface{}) ([]*models.Property, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Property, error)
	UploadPhoto(ctx context.Context, propertyID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	cacheSvc     caching.CacheService
	storage      StorageService
	photoBucket  string
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, cacheSvc caching.CacheService, storage StorageService, photoBucket string) PropertyServiceInterface {
	return &propertyService{
		propertyRepo: propertyRepo,
		cacheSvc:     cacheSvc,
		storage:      storage,
		photoBucket:  photoBucket,
	}
}

func (s *propertyService) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	if property.ID == uuid.Nil {
		property.ID = uuid.New()
	}
	if property.PostedDate.IsZero() {
		property.PostedDate = time.Now().UTC()
	}
	if err := common.ValidateRequiredString(property.Name, "name", 255); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := common.ValidatePositiveFloat(property.PricePerMonth, "price_per_month", 10000000.00); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	if cached, err := s.cacheSvc.GetProperty(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: property cache read failed: %v", err)
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("property %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}

	if err := s.cacheSvc.SetProperty(ctx, property, propertyCacheTTL); err != nil {
		log.Printf("WARN: property cache write failed: %v", err)
	}
	return property, nil
}

// Update writes through and drops the cached entry so the next read sees
// fresh data.
func (s *propertyService) Update(ctx context.Context, property *models.Property) error {
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return err
	}
	if err := s.cacheSvc.DeleteProperty(ctx, property.ID); err != nil {
		log.Printf("WARN: property cache invalidation failed: %v", err)
	}
	return nil
}

// Search cleans the raw filter params first: empty values and the "any"
// wildcard are dropped before the query is built.
func (s *propertyService) Search(ctx context.Context, params map[string]interface{}) ([]*models.Property, error) {
	filter, err := buildSearchFilter(common.CleanParams(params))
	if err != nil {
		return nil, err
	}
	return s.propertyRepo.Search(ctx, filter)
}

func (s *propertyService) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	return s.propertyRepo.ListByManager(ctx, managerID)
}

func (s *propertyService) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Property, error) {
	return s.propertyRepo.ListByIDs(ctx, ids)
}

func (s *propertyService) UploadPhoto(ctx context.Context, propertyID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("properties/%s/%s", propertyID, filename)
	if err := s.storage.Upload(ctx, s.photoBucket, key, reader, size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func buildSearchFilter(params map[string]interface{}) (*models.PropertySearchFilter, error) {
	filter := &models.PropertySearchFilter{}

	for key, value := range params {
		switch key {
		case "city":
			filter.City = stringParam(value)
		case "state":
			filter.State = stringParam(value)
		case "country":
			filter.Country = stringParam(value)
		case "propertyType":
			filter.PropertyType = stringParam(value)
		case "priceMin":
			f, err := floatParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.PriceMin = f
		case "priceMax":
			f, err := floatParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.PriceMax = f
		case "beds":
			n, err := intParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.Beds = n
		case "baths":
			n, err := intParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.Baths = n
		case "squareFeetMin":
			n, err := intParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.SquareFeetMin = n
		case "squareFeetMax":
			n, err := intParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.SquareFeetMax = n
		case "amenities":
			filter.Amenities = sliceParam(value)
		case "limit":
			n, err := intParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.Limit = *n
		case "offset":
			n, err := intParam(value, key)
			if err != nil {
				return nil, err
			}
			filter.Offset = *n
		}
	}
	return filter, nil
}

func stringParam(value interface{}) *string {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" {
			return &s
		}
	}
	return nil
}

func floatParam(value interface{}, field string) (*float64, error) {
	switch v := value.(type) {
	case float64:
		return &v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be numeric: %w", field, common.ErrValidation)
		}
		return &f, nil
	}
	return nil, fmt.Errorf("%s must be numeric: %w", field, common.ErrValidation)
}

func intParam(value interface{}, field string) (*int, error) {
	switch v := value.(type) {
	case int:
		return &v, nil
	case float64:
		n := int(v)
		return &n, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", field, common.ErrValidation)
		}
		return &n, nil
	}
	return nil, fmt.Errorf("%s must be an integer: %w", field, common.ErrValidation)
}

func sliceParam(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		var out []string
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
