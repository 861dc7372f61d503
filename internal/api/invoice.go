package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipeai/backend/internal/service"
)

// InvoiceHandler handles invoice upload requests
type InvoiceHandler struct {
	invoices service.IInvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler instance
func NewInvoiceHandler(invoices service.IInvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes registers the invoice routes
func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload-invoice", h.UploadInvoice)
}

// UploadInvoice accepts a PDF invoice and runs the extraction pipeline
func (h *InvoiceHandler) UploadInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file part"})
		return
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file format"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	result, err := h.invoices.ProcessInvoice(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
