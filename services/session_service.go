package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/forgeflow/forgeflow-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionService manages the singleton workshop session that gates the
// manufacturer dashboard. The session row existing is the entire
// authentication mechanism: no password, no token. Login overwrites the
// row, logout deletes it, restore re-reads it after a restart.
type SessionService interface {
	// Login establishes the session for the named workshop and returns the
	// orders currently assigned to it.
	Login(workshopName string) ([]models.Order, error)

	// Restore re-establishes a previous session. A missing row or a failed
	// read means a logged-out start, never an error.
	Restore() (string, []models.Order, error)

	// Logout deletes the session row. Deleting an absent row is fine.
	Logout() error
}

// GormSessionService implements SessionService on the configured database
type GormSessionService struct {
	db     *gorm.DB
	orders OrderService
}

var sessionServiceInstance SessionService

// InitSessionService initializes the session service
func InitSessionService(db *gorm.DB, orders OrderService) SessionService {
	sessionServiceInstance = &GormSessionService{db: db, orders: orders}
	return sessionServiceInstance
}

// GetSessionService returns the initialized session service instance
func GetSessionService() SessionService {
	return sessionServiceInstance
}

// SetSessionService sets the session service instance (primarily for testing)
func SetSessionService(s SessionService) {
	sessionServiceInstance = s
}

// Login upserts the singleton session row and fetches the workshop's orders
func (s *GormSessionService) Login(workshopName string) ([]models.Order, error) {
	name := strings.TrimSpace(workshopName)
	if name == "" {
		return nil, NewValidationError("Workshop name is required")
	}

	session := models.WorkshopSession{
		ID:           models.WorkshopSessionID,
		WorkshopName: name,
		UpdatedAt:    time.Now().UTC(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"workshop_name", "updated_at"}),
	}).Create(&session).Error
	if err != nil {
		return nil, NewStoreError("Failed to save workshop session", err)
	}

	return s.orders.ListByManufacturer(name)
}

// Restore reads the singleton session row if one exists
func (s *GormSessionService) Restore() (string, []models.Order, error) {
	var session models.WorkshopSession
	err := s.db.First(&session, "id = ?", models.WorkshopSessionID).Error
	if err != nil {
		// Absent or unreadable session means starting logged out; the
		// dashboard shows the login form as it would on first use.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to restore workshop session, starting logged out: %v", err)
		}
		return "", nil, nil
	}

	orders, err := s.orders.ListByManufacturer(session.WorkshopName)
	if err != nil {
		return "", nil, err
	}
	return session.WorkshopName, orders, nil
}

// Logout deletes the singleton session row
func (s *GormSessionService) Logout() error {
	err := s.db.Delete(&models.WorkshopSession{}, "id = ?", models.WorkshopSessionID).Error
	if err != nil {
		return NewStoreError("Failed to clear workshop session", err)
	}
	return nil
}
