package acceptance

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgeflow/forgeflow-api/config"
	"github.com/forgeflow/forgeflow-api/controllers"
	"github.com/forgeflow/forgeflow-api/middleware"
	"github.com/forgeflow/forgeflow-api/models"
	"github.com/forgeflow/forgeflow-api/services"
	"github.com/forgeflow/forgeflow-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newApp stands up the whole application against an in-memory store
func newApp(t *testing.T) *gin.Engine {
	t.Helper()
	testutil.MustSetTestEnvironment(t)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.WorkshopSession{}))
	config.SetDB(db)

	orderService := services.InitOrderService(db)
	services.InitSessionService(db, orderService)
	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	services.InitFileService(mockS3)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/orders", controllers.CreateOrder)
	v1.GET("/orders", controllers.TrackOrders)
	v1.GET("/admin/orders", controllers.ListAllOrders)
	v1.PATCH("/admin/orders/:id/status", controllers.UpdateOrderStatus)
	v1.PATCH("/admin/orders/:id/manufacturer", controllers.AssignManufacturer)
	v1.POST("/workshop/login", controllers.WorkshopLogin)
	gated := v1.Group("/workshop", middleware.RequireWorkshopSession())
	gated.GET("/orders", controllers.ListWorkshopOrders)
	gated.PATCH("/orders/:id/status", controllers.UpdateWorkshopOrderStatus)

	return router
}

// TestMarketplaceWalkthrough follows one order through every role:
// a customer submits it, the admin assigns it, the workshop completes it,
// and the customer sees the final status.
func TestMarketplaceWalkthrough(t *testing.T) {
	router := newApp(t)

	// Customer submits a print job
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("email", "maker@example.com")
	writer.WriteField("material", "Carbon Fiber PETG")
	writer.WriteField("quantity", "10")
	writer.WriteField("deadline", "2025-12-01")
	part, err := writer.CreateFormFile("file", "mount.3mf")
	require.NoError(t, err)
	part.Write([]byte("3mf payload"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/v1/orders", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := created["data"].(map[string]interface{})["id"].(string)

	// Admin assigns the order to a workshop
	payload, _ := json.Marshal(map[string]interface{}{"manufacturer": "Precision Prints"})
	req, _ = http.NewRequest("PATCH", "/api/v1/admin/orders/"+orderID+"/manufacturer", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The workshop logs in and completes the job
	payload, _ = json.Marshal(map[string]interface{}{"name": "Precision Prints"})
	req, _ = http.NewRequest("POST", "/api/v1/workshop/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload, _ = json.Marshal(map[string]interface{}{"status": "Completed"})
	req, _ = http.NewRequest("PATCH", "/api/v1/workshop/orders/"+orderID+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The customer tracks the order and sees it completed
	req, _ = http.NewRequest("GET", "/api/v1/orders?email=maker%40example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var tracked map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tracked))
	orders := tracked["data"].([]interface{})
	require.Len(t, orders, 1)
	final := orders[0].(map[string]interface{})
	assert.Equal(t, "Completed", final["status"])
	assert.Equal(t, "Precision Prints", final["manufacturer"])
	assert.Contains(t, final["file_url"], "mount.3mf")
}
