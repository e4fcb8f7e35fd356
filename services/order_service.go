package services

import (
	"errors"
	"strings"

	"github.com/forgeflow/forgeflow-api/models"
	"gorm.io/gorm"
)

// CreateOrderInput carries the fields a customer submits for a new order.
// FileURL is filled in by the caller after the design file upload succeeds,
// or left empty when no file was attached.
type CreateOrderInput struct {
	Email    string
	Material string
	Quantity int
	Deadline string
	FileURL  string
}

// OrderService owns every legal operation on an order. Views never touch
// the order table directly; they go through this interface so the whole
// lifecycle is testable without a live backend.
type OrderService interface {
	// Create persists a new order. Every order starts as Pending with no
	// manufacturer assigned, regardless of input.
	Create(input CreateOrderInput) (*models.Order, error)

	// SetStatus overwrites the order status. Any of the five statuses may
	// follow any other; there is deliberately no transition graph.
	SetStatus(id, status string) (*models.Order, error)

	// AssignManufacturer sets or clears the assignee. A nil name clears the
	// field to NULL, never to "". Assignment does not touch the status and
	// the name is not checked against any workshop registry.
	AssignManufacturer(id string, name *string) (*models.Order, error)

	// SetStatusForWorkshop is SetStatus restricted to orders currently
	// assigned to the named workshop; anything else reads as not found.
	SetStatusForWorkshop(id, workshopName, status string) (*models.Order, error)

	// ListAll returns every order, newest first.
	ListAll() ([]models.Order, error)

	// ListByEmail returns a customer's orders, newest first. Matching is
	// case- and whitespace-insensitive because emails are normalized on
	// both the write and the read path.
	ListByEmail(email string) ([]models.Order, error)

	// ListByManufacturer returns a workshop's assigned orders, newest
	// first, matching the name case-insensitively.
	ListByManufacturer(name string) ([]models.Order, error)
}

// GormOrderService implements OrderService on the configured database
type GormOrderService struct {
	db *gorm.DB
}

var orderServiceInstance OrderService

// InitOrderService initializes the order service on the given database
func InitOrderService(db *gorm.DB) OrderService {
	orderServiceInstance = &GormOrderService{db: db}
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(s OrderService) {
	orderServiceInstance = s
}

// NormalizeEmail trims whitespace and lowercases an email address. Applied
// before storage and before lookup so both sides agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create persists a new order with status Pending and no manufacturer
func (s *GormOrderService) Create(input CreateOrderInput) (*models.Order, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, NewValidationError("Email is required")
	}
	if strings.TrimSpace(input.Material) == "" {
		return nil, NewValidationError("Material is required")
	}
	if input.Quantity < 1 {
		return nil, NewValidationError("Quantity must be at least 1")
	}
	if strings.TrimSpace(input.Deadline) == "" {
		return nil, NewValidationError("Deadline is required")
	}

	order := models.Order{
		Email:    email,
		Material: input.Material,
		Quantity: input.Quantity,
		Deadline: input.Deadline,
		FileURL:  input.FileURL,
		Status:   models.StatusPending,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, NewStoreError("Failed to create order", err)
	}
	return &order, nil
}

// SetStatus overwrites the status of an existing order
func (s *GormOrderService) SetStatus(id, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, NewValidationError("Status must be one of: " + strings.Join(models.OrderStatuses, ", "))
	}

	order, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, NewStoreError("Failed to update order status", err)
	}
	return order, nil
}

// SetStatusForWorkshop overwrites the status of an order assigned to the
// named workshop. An order assigned elsewhere (or unassigned) is reported
// as not found rather than forbidden, so the endpoint leaks nothing about
// other workshops' orders.
func (s *GormOrderService) SetStatusForWorkshop(id, workshopName, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, NewValidationError("Status must be one of: " + strings.Join(models.OrderStatuses, ", "))
	}

	var order models.Order
	err := s.db.First(&order, "id = ? AND LOWER(manufacturer) = ?", id, strings.ToLower(strings.TrimSpace(workshopName))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order not found")
		}
		return nil, NewStoreError("Failed to load order", err)
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, NewStoreError("Failed to update order status", err)
	}
	return &order, nil
}

// AssignManufacturer sets or clears the manufacturer of an existing order
func (s *GormOrderService) AssignManufacturer(id string, name *string) (*models.Order, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, NewValidationError("Manufacturer name must not be empty; omit it to clear the assignment")
	}

	order, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("manufacturer", name).Error; err != nil {
		return nil, NewStoreError("Failed to assign manufacturer", err)
	}
	return order, nil
}

// ListAll returns every order, newest first
func (s *GormOrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, NewStoreError("Failed to fetch orders", err)
	}
	return orders, nil
}

// ListByEmail returns the orders of one customer, newest first
func (s *GormOrderService) ListByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Where("email = ?", NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, NewStoreError("Failed to fetch orders", err)
	}
	return orders, nil
}

// ListByManufacturer returns the orders assigned to one workshop, newest first
func (s *GormOrderService) ListByManufacturer(name string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Where("LOWER(manufacturer) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, NewStoreError("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *GormOrderService) findByID(id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order not found")
		}
		return nil, NewStoreError("Failed to load order", err)
	}
	return &order, nil
}
