package services

import (
	"testing"
	"time"

	"github.com/forgeflow/forgeflow-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSessionService(t *testing.T) (*gorm.DB, SessionService) {
	db, orderSvc := setupOrderService(t)
	return db, InitSessionService(db, orderSvc)
}

func TestLogin_EstablishesSessionAndReturnsOrders(t *testing.T) {
	db, svc := setupSessionService(t)
	assigned := seedOrder(t, db, "a@b.com", "Acme", time.Now())
	seedOrder(t, db, "b@c.com", "EcoFab", time.Now())

	orders, err := svc.Login("Acme")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, assigned.ID, orders[0].ID)

	// The singleton row holds the workshop name under the fixed id
	var session models.WorkshopSession
	require.NoError(t, db.First(&session, "id = ?", models.WorkshopSessionID).Error)
	assert.Equal(t, "Acme", session.WorkshopName)
}

func TestLogin_RequiresName(t *testing.T) {
	_, svc := setupSessionService(t)

	for _, name := range []string{"", "   "} {
		_, err := svc.Login(name)
		require.Error(t, err)
		_, ok := err.(*ValidationError)
		assert.True(t, ok, "expected ValidationError, got %T", err)
	}
}

func TestLogin_OverwritesPreviousSession(t *testing.T) {
	db, svc := setupSessionService(t)

	_, err := svc.Login("Acme")
	require.NoError(t, err)
	_, err = svc.Login("EcoFab")
	require.NoError(t, err)

	// Still one row, now holding the latest name
	var count int64
	db.Model(&models.WorkshopSession{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var session models.WorkshopSession
	require.NoError(t, db.First(&session, "id = ?", models.WorkshopSessionID).Error)
	assert.Equal(t, "EcoFab", session.WorkshopName)
}

func TestRestore_RoundTrip(t *testing.T) {
	db, svc := setupSessionService(t)
	seedOrder(t, db, "a@b.com", "Acme", time.Now())

	loginOrders, err := svc.Login("Acme")
	require.NoError(t, err)

	// Simulate a process restart: a fresh service over the same store
	restored := InitSessionService(db, GetOrderService())
	name, restoreOrders, err := restored.Restore()
	require.NoError(t, err)
	assert.Equal(t, "Acme", name)
	require.Len(t, restoreOrders, len(loginOrders))
	assert.Equal(t, loginOrders[0].ID, restoreOrders[0].ID)
}

func TestRestore_NoSessionIsSilent(t *testing.T) {
	_, svc := setupSessionService(t)

	name, orders, err := svc.Restore()
	assert.NoError(t, err, "a missing session is a logged-out start, not an error")
	assert.Equal(t, "", name)
	assert.Nil(t, orders)
}

func TestLogout_DeletesSession(t *testing.T) {
	db, svc := setupSessionService(t)

	_, err := svc.Login("Acme")
	require.NoError(t, err)
	require.NoError(t, svc.Logout())

	var count int64
	db.Model(&models.WorkshopSession{}).Count(&count)
	assert.Equal(t, int64(0), count)

	name, _, err := svc.Restore()
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestLogout_IsIdempotent(t *testing.T) {
	_, svc := setupSessionService(t)

	assert.NoError(t, svc.Logout())
	assert.NoError(t, svc.Logout())
}
