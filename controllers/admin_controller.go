package controllers

import (
	"net/http"

	"github.com/forgeflow/forgeflow-api/models"
	"github.com/forgeflow/forgeflow-api/services"
	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignManufacturerRequest represents the request body for an assignment.
// A null (or absent) manufacturer clears the assignment; the UI's "None"
// sentinel is accepted as clear too.
type AssignManufacturerRequest struct {
	Manufacturer *string `json:"manufacturer"`
}

// ListAllOrders handles GET /api/v1/admin/orders - every order, newest first
func ListAllOrders(c *gin.Context) {
	orders, err := services.GetOrderService().ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// OrderStats handles GET /api/v1/admin/orders/stats - the dashboard counters
func OrderStats(c *gin.Context) {
	orders, err := services.GetOrderService().ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pending := 0
	for _, o := range orders {
		if o.Status == models.StatusPending {
			pending++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total":   len(orders),
			"pending": pending,
		},
	})
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	order, err := services.GetOrderService().SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignManufacturer handles PATCH /api/v1/admin/orders/:id/manufacturer
func AssignManufacturer(c *gin.Context) {
	var req AssignManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	name := req.Manufacturer
	if name != nil && *name == "None" {
		name = nil
	}

	order, err := services.GetOrderService().AssignManufacturer(c.Param("id"), name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
