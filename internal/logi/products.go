package logi

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
)

// ProductInput carries operator-entered product fields. ArrivedAt defaults
// to today and Status to processing. ExpectedDelivery and DriverID are optional.
type ProductInput struct {
	Weight           decimal.Decimal
	Status           DeliveryStatus
	Category         ProductCategory
	ArrivedAt        time.Time
	ExpectedDelivery time.Time
	SenderID         int64
	RecipientID      int64
	DriverID         int64
}

// AddProduct registers a product and its tracking record. The tracking
// record is a snapshot of the recipient and their address at this moment.
func (s *LogiService) AddProduct(in ProductInput) (*sqlc.Product, *sqlc.TrackingRecord, error) {
	if !in.Weight.IsPositive() {
		return nil, nil, invalidInput("weight must be greater than zero")
	}
	if in.Status == "" {
		in.Status = StatusProcessing
	}
	if _, err := ParseEnum(string(in.Status), DeliveryStatuses); err != nil {
		return nil, nil, err
	}
	if _, err := ParseEnum(string(in.Category), ProductCategories); err != nil {
		return nil, nil, err
	}
	if in.ArrivedAt.IsZero() {
		in.ArrivedAt = s.clock.Now()
	}
	arrived := truncateDay(in.ArrivedAt)
	if !in.ExpectedDelivery.IsZero() && truncateDay(in.ExpectedDelivery).Before(arrived) {
		return nil, nil, invalidInput("expected delivery is before arrival")
	}

	sender, err := s.database.FindClientByPersonID(in.SenderID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding sender: %w", err)
	}
	if sender == nil {
		return nil, nil, fmt.Errorf("%w: sender %d is not a client", ErrNotFound, in.SenderID)
	}

	recipient, err := s.FindPerson(in.RecipientID)
	if err != nil {
		return nil, nil, err
	}
	address, err := s.FindAddress(recipient.AddressID)
	if err != nil {
		return nil, nil, err
	}

	params := sqlc.InsertProductParams{
		WeightKg:    in.Weight,
		Status:      string(in.Status),
		Category:    string(in.Category),
		ArrivedAt:   arrived,
		SenderID:    sender.PersonID,
		RecipientID: recipient.ID,
	}
	if !in.ExpectedDelivery.IsZero() {
		params.ExpectedDelivery = sql.NullTime{Time: truncateDay(in.ExpectedDelivery), Valid: true}
	}
	if in.DriverID != 0 {
		driver, err := s.FindEmployee(in.DriverID)
		if err != nil {
			return nil, nil, err
		}
		if driver.Position != PositionDriver {
			return nil, nil, invalidInput("employee %d is not a driver", in.DriverID)
		}
		params.DriverID = sql.NullInt64{Int64: driver.PersonID, Valid: true}
	}

	tracking := sqlc.InsertTrackingRecordParams{
		Code:              s.newTrackingCode(),
		RecipientName:     recipient.Name,
		RecipientDocument: recipient.Document,
		RecipientPhone:    recipient.Phone,
		PostalCode:        address.PostalCode,
		State:             address.State,
		City:              address.City,
		District:          address.District,
		Street:            address.Street,
		Number:            address.Number,
		Complement:        address.Complement,
	}

	product, err := s.database.CreateProduct(tracking, params)
	if err != nil {
		return nil, nil, fmt.Errorf("creating product: %w", err)
	}
	record, err := s.database.FindTrackingRecordByID(product.TrackingID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding tracking record: %w", err)
	}

	s.logger.Info("product added", "id", product.ID, "tracking_code", tracking.Code, "weight_kg", product.WeightKg.String())
	return product, record, nil
}

// FindProduct returns the product with the given id.
func (s *LogiService) FindProduct(id int64) (*sqlc.Product, error) {
	p, err := s.database.FindProductByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding product: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return p, nil
}

func (s *LogiService) ListProducts() ([]*sqlc.ListProductsRow, error) {
	products, err := s.database.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// ListProductsForPerson returns the products a person sends or receives.
func (s *LogiService) ListProductsForPerson(personID int64) ([]*sqlc.ListProductsRow, error) {
	products, err := s.database.ListProductsForPerson(personID)
	if err != nil {
		return nil, fmt.Errorf("listing products for person: %w", err)
	}
	return products, nil
}

// ProductUpdate lists the product fields to change. Zero values keep the
// current value. DriverID set to 0 unassigns the driver.
type ProductUpdate struct {
	Weight           decimal.Decimal
	Status           DeliveryStatus
	Category         ProductCategory
	ArrivedAt        time.Time
	ExpectedDelivery time.Time
	DriverID         *int64
}

// UpdateProduct edits a product in place. Sender and recipient cannot be
// changed because the tracking record already snapshots the recipient.
func (s *LogiService) UpdateProduct(id int64, in ProductUpdate) (*sqlc.Product, error) {
	p, err := s.FindProduct(id)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpdateProductParams{
		WeightKg:         p.WeightKg,
		Status:           p.Status,
		Category:         p.Category,
		ArrivedAt:        p.ArrivedAt,
		ExpectedDelivery: p.ExpectedDelivery,
		DriverID:         p.DriverID,
		ID:               p.ID,
	}
	if !in.Weight.IsZero() {
		if !in.Weight.IsPositive() {
			return nil, invalidInput("weight must be greater than zero")
		}
		params.WeightKg = in.Weight
	}
	if in.Status != "" {
		if _, err := ParseEnum(string(in.Status), DeliveryStatuses); err != nil {
			return nil, err
		}
		params.Status = string(in.Status)
	}
	if in.Category != "" {
		if _, err := ParseEnum(string(in.Category), ProductCategories); err != nil {
			return nil, err
		}
		params.Category = string(in.Category)
	}
	if !in.ArrivedAt.IsZero() {
		params.ArrivedAt = truncateDay(in.ArrivedAt)
	}
	if !in.ExpectedDelivery.IsZero() {
		params.ExpectedDelivery = sql.NullTime{Time: truncateDay(in.ExpectedDelivery), Valid: true}
	}
	if params.ExpectedDelivery.Valid && params.ExpectedDelivery.Time.Before(truncateDay(params.ArrivedAt)) {
		return nil, invalidInput("expected delivery is before arrival")
	}
	if in.DriverID != nil {
		params.DriverID = sql.NullInt64{}
		if *in.DriverID != 0 {
			driver, err := s.FindEmployee(*in.DriverID)
			if err != nil {
				return nil, err
			}
			if driver.Position != PositionDriver {
				return nil, invalidInput("employee %d is not a driver", *in.DriverID)
			}
			params.DriverID = sql.NullInt64{Int64: driver.PersonID, Valid: true}
		}
	}

	if err := s.database.UpdateProduct(params); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	s.logger.Info("product updated", "id", p.ID)
	return s.FindProduct(p.ID)
}

// UpdateProductStatus moves a product to a new delivery status.
func (s *LogiService) UpdateProductStatus(id int64, status DeliveryStatus) error {
	if _, err := ParseEnum(string(status), DeliveryStatuses); err != nil {
		return err
	}
	p, err := s.FindProduct(id)
	if err != nil {
		return err
	}
	if err := s.database.UpdateProductStatus(p.ID, string(status)); err != nil {
		return fmt.Errorf("updating product status: %w", err)
	}
	s.logger.Info("product status updated", "id", p.ID, "from", p.Status, "to", string(status))
	return nil
}

// RemoveProduct deletes a product that is not part of any load, together
// with its tracking record. A nil confirm skips the prompt.
func (s *LogiService) RemoveProduct(id int64, confirm func(p *sqlc.Product) bool) error {
	p, err := s.FindProduct(id)
	if err != nil {
		return err
	}
	loaded, err := s.database.CountProductLoadItems(p.ID)
	if err != nil {
		return fmt.Errorf("checking load items: %w", err)
	}
	if loaded > 0 {
		return fmt.Errorf("%w: product %d is part of %d load item(s)", ErrInUse, p.ID, loaded)
	}
	if confirm != nil && !confirm(p) {
		return ErrCancelled
	}
	if err := s.database.DeleteProduct(p); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	s.logger.Info("product removed", "id", p.ID)
	return nil
}

// TrackProduct returns the tracking record for a tracking code.
func (s *LogiService) TrackProduct(code string) (*sqlc.TrackingRecord, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	t, err := s.database.FindTrackingRecordByCode(code)
	if err != nil {
		return nil, fmt.Errorf("finding tracking record: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: tracking code %s", ErrNotFound, code)
	}
	return t, nil
}

func (s *LogiService) ListTrackingRecords() ([]*sqlc.TrackingRecord, error) {
	records, err := s.database.ListTrackingRecords()
	if err != nil {
		return nil, fmt.Errorf("listing tracking records: %w", err)
	}
	return records, nil
}

// newTrackingCode builds a code of the form SRL<yyyymmdd><suffix>.
func (s *LogiService) newTrackingCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(s.idgen.New(), "-", ""))
	if len(suffix) > 10 {
		suffix = suffix[:10]
	}
	return "SRL" + s.clock.Now().UTC().Format("20060102") + suffix
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
