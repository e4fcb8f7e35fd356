package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/forgeflow/forgeflow-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOrder handles POST /api/v1/orders - the customer intake form.
//
// The request is a multipart form: email, material, quantity, deadline, an
// optional design file, and an optional skip_file flag. The file upload
// must complete before the order row is written; if the upload fails no
// order is created. When the failure is a missing storage bucket the
// response carries a distinct code so the client can offer "submit without
// file" (skip_file=true), which persists the order with file_url = "".
func CreateOrder(c *gin.Context) {
	email := c.PostForm("email")
	material := c.PostForm("material")
	deadline := c.PostForm("deadline")
	quantityStr := c.PostForm("quantity")
	skipFile := c.PostForm("skip_file") == "true"

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity must be a number")
		return
	}

	// Required-field checks run before the upload so a bad form never
	// costs a file store call
	if strings.TrimSpace(email) == "" || strings.TrimSpace(material) == "" || strings.TrimSpace(deadline) == "" || quantity < 1 {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email, material, quantity and deadline are required")
		return
	}

	// 1. Upload the design file, if one was attached and not skipped
	fileURL := ""
	if !skipFile {
		if fileHeader, fileErr := c.FormFile("file"); fileErr == nil {
			fileURL, err = services.GetFileService().UploadDesignFile(fileHeader)
			if err != nil {
				respondServiceError(c, err)
				return
			}
		}
	}

	// 2. Insert the order
	order, err := services.GetOrderService().Create(services.CreateOrderInput{
		Email:    email,
		Material: material,
		Quantity: quantity,
		Deadline: deadline,
		FileURL:  fileURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// TrackOrders handles GET /api/v1/orders?email=... - the customer tracker.
// An empty result set is a valid 200 response, not an error: the customer
// simply has no orders yet.
func TrackOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email query parameter is required")
		return
	}

	orders, err := services.GetOrderService().ListByEmail(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}
