package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgeflow/forgeflow-api/config"
	"github.com/forgeflow/forgeflow-api/middleware"
	"github.com/forgeflow/forgeflow-api/models"
	"github.com/forgeflow/forgeflow-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestEnv wires a fresh in-memory database, services, and router the
// same way main does, with the mock file store in place of S3
func setupTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *services.MockS3Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.WorkshopSession{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)

	orderService := services.InitOrderService(db)
	services.InitSessionService(db, orderService)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	services.InitFileService(mockS3)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", CreateOrder)
		v1.GET("/orders", TrackOrders)

		admin := v1.Group("/admin")
		{
			admin.GET("/orders", ListAllOrders)
			admin.GET("/orders/stats", OrderStats)
			admin.PATCH("/orders/:id/status", UpdateOrderStatus)
			admin.PATCH("/orders/:id/manufacturer", AssignManufacturer)
		}

		workshop := v1.Group("/workshop")
		{
			workshop.POST("/login", WorkshopLogin)
			workshop.GET("/session", WorkshopSession)
			workshop.POST("/logout", WorkshopLogout)

			gated := workshop.Group("")
			gated.Use(middleware.RequireWorkshopSession())
			{
				gated.GET("/orders", ListWorkshopOrders)
				gated.PATCH("/orders/:id/status", UpdateWorkshopOrderStatus)
			}
		}
	}

	return router, db, mockS3
}

// seedTestOrder inserts an order row directly, bypassing the service
func seedTestOrder(t *testing.T, db *gorm.DB, email, manufacturer, status string, createdAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		Email:     email,
		Material:  "PLA (Standard)",
		Quantity:  2,
		Deadline:  "2025-06-01",
		Status:    status,
		CreatedAt: createdAt,
	}
	if manufacturer != "" {
		order.Manufacturer = &manufacturer
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

// orderForm describes a multipart order submission
type orderForm struct {
	email    string
	material string
	quantity string
	deadline string
	fileName string
	fileBody []byte
	skipFile bool
}

// newOrderRequest builds the multipart POST /api/v1/orders request a
// customer form submission produces
func newOrderRequest(t *testing.T, form orderForm) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"email":    form.email,
		"material": form.material,
		"quantity": form.quantity,
		"deadline": form.deadline,
	}
	if form.skipFile {
		fields["skip_file"] = "true"
	}
	for k, v := range fields {
		if v != "" {
			require.NoError(t, writer.WriteField(k, v))
		}
	}

	if form.fileName != "" {
		part, err := writer.CreateFormFile("file", form.fileName)
		require.NoError(t, err)
		_, err = part.Write(form.fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/v1/orders", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// doJSON performs a request with a JSON body and returns the recorder
func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseResponse unmarshals the standard response envelope
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "response should be valid JSON: %s", w.Body.String())
	return response
}

// errorCode extracts error.code from a failure envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := parseResponse(t, w)
	require.Equal(t, false, response["success"])
	errData, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "error field should be an object")
	return errData["code"].(string)
}
