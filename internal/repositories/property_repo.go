package repositories

import (
	"context"
	"fmt"

	"rentiva/internal/models"

	"github.com/google/uuid"
)

const propertyColumns = `id, manager_id, name, description, price_per_month, security_deposit, application_fee, beds, baths, square_feet, property_type, amenities, photo_keys, address, city, state, country, postal_code, latitude, longitude, closed, posted_date, created_at, updated_at`

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Search(ctx context.Context, filter *models.PropertySearchFilter) ([]*models.Property, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Property, error)
}

type propertyRepo struct {
	db DBTX
}

func NewPropertyRepo(db DBTX) PropertyRepository {
	return &propertyRepo{db: db}
}

func scanProperty(row interface{ Scan(dest ...any) error }) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(&p.ID, &p.ManagerID, &p.Name, &p.Description, &p.PricePerMonth, &p.SecurityDeposit, &p.ApplicationFee, &p.Beds, &p.Baths, &p.SquareFeet, &p.PropertyType, &p.Amenities, &p.PhotoKeys, &p.Address, &p.City, &p.State, &p.Country, &p.PostalCode, &p.Latitude, &p.Longitude, &p.Closed, &p.PostedDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (id, manager_id, name, description, price_per_month, security_deposit, application_fee, beds, baths, square_feet, property_type, amenities, photo_keys, address, city, state, country, postal_code, latitude, longitude, closed, posted_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, property.ID, property.ManagerID, property.Name, property.Description, property.PricePerMonth, property.SecurityDeposit, property.ApplicationFee, property.Beds, property.Baths, property.SquareFeet, property.PropertyType, property.Amenities, property.PhotoKeys, property.Address, property.City, property.State, property.Country, property.PostalCode, property.Latitude, property.Longitude, property.Closed, property.PostedDate)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)
	return scanProperty(r.db.QueryRow(ctx, query, id))
}

func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, description = $2, price_per_month = $3, security_deposit = $4, application_fee = $5, beds = $6, baths = $7, square_feet = $8, property_type = $9, amenities = $10, photo_keys = $11, address = $12, city = $13, state = $14, country = $15, postal_code = $16, latitude = $17, longitude = $18, closed = $19, updated_at = NOW()
		WHERE id = $20
	`
	_, err := r.db.Exec(ctx, query, property.Name, property.Description, property.PricePerMonth, property.SecurityDeposit, property.ApplicationFee, property.Beds, property.Baths, property.SquareFeet, property.PropertyType, property.Amenities, property.PhotoKeys, property.Address, property.City, property.State, property.Country, property.PostalCode, property.Latitude, property.Longitude, property.Closed, property.ID)
	return err
}

// Search builds the WHERE clause incrementally from whichever filter fields
// are set. Closed listings never show up in search results.
func (r *propertyRepo) Search(ctx context.Context, filter *models.PropertySearchFilter) ([]*models.Property, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	query := fmt.Sprintf(`SELECT %s FROM properties WHERE closed = FALSE`, propertyColumns)
	args := []any{}
	argn := 0

	addCondition := func(condition string, value any) {
		argn++
		query += fmt.Sprintf(" AND "+condition, argn)
		args = append(args, value)
	}

	if filter.City != nil {
		addCondition("city ILIKE $%d", *filter.City)
	}
	if filter.State != nil {
		addCondition("state ILIKE $%d", *filter.State)
	}
	if filter.Country != nil {
		addCondition("country ILIKE $%d", *filter.Country)
	}
	if filter.PriceMin != nil {
		addCondition("price_per_month >= $%d", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		addCondition("price_per_month <= $%d", *filter.PriceMax)
	}
	if filter.Beds != nil {
		addCondition("beds >= $%d", *filter.Beds)
	}
	if filter.Baths != nil {
		addCondition("baths >= $%d", *filter.Baths)
	}
	if filter.PropertyType != nil {
		addCondition("property_type = $%d", *filter.PropertyType)
	}
	if filter.SquareFeetMin != nil {
		addCondition("square_feet >= $%d", *filter.SquareFeetMin)
	}
	if filter.SquareFeetMax != nil {
		addCondition("square_feet <= $%d", *filter.SquareFeetMax)
	}
	if len(filter.Amenities) > 0 {
		addCondition("amenities @> $%d", filter.Amenities)
	}

	query += fmt.Sprintf(" ORDER BY posted_date DESC LIMIT $%d OFFSET $%d", argn+1, argn+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *propertyRepo) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE manager_id = $1 ORDER BY posted_date DESC`, propertyColumns)
	rows, err := r.db.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *propertyRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = ANY($1)`, propertyColumns)
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}
