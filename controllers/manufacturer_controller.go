package controllers

import (
	"net/http"

	"github.com/forgeflow/forgeflow-api/middleware"
	"github.com/forgeflow/forgeflow-api/services"
	"github.com/gin-gonic/gin"
)

// WorkshopLoginRequest represents the request body for a workshop login
type WorkshopLoginRequest struct {
	Name string `json:"name" binding:"required"`
}

// WorkshopLogin handles POST /api/v1/workshop/login. Any non-empty name is
// accepted; there is no credential behind the workshop identity.
func WorkshopLogin(c *gin.Context) {
	var req WorkshopLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Workshop name is required")
		return
	}

	orders, err := services.GetSessionService().Login(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"workshop_name": req.Name,
			"orders":        orders,
		},
	})
}

// WorkshopSession handles GET /api/v1/workshop/session - session restore on
// startup. A missing session is a normal logged-out response, never an
// error, so a fresh client silently lands on the login form.
func WorkshopSession(c *gin.Context) {
	name, orders, err := services.GetSessionService().Restore()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if name == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"logged_in": false,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"logged_in":     true,
			"workshop_name": name,
			"orders":        orders,
		},
	})
}

// WorkshopLogout handles POST /api/v1/workshop/logout
func WorkshopLogout(c *gin.Context) {
	if err := services.GetSessionService().Logout(); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// ListWorkshopOrders handles GET /api/v1/workshop/orders - the orders
// assigned to the active session's workshop
func ListWorkshopOrders(c *gin.Context) {
	name, err := middleware.GetWorkshopName(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "NO_SESSION", "No active workshop session")
		return
	}

	orders, err := services.GetOrderService().ListByManufacturer(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateWorkshopOrderStatus handles PATCH /api/v1/workshop/orders/:id/status.
// Only orders assigned to the session's workshop can be touched.
func UpdateWorkshopOrderStatus(c *gin.Context) {
	name, err := middleware.GetWorkshopName(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "NO_SESSION", "No active workshop session")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	order, err := services.GetOrderService().SetStatusForWorkshop(c.Param("id"), name, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
