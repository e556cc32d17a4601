package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/response"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/service"
)

// AdminHandler exposes read-only access to persisted interview records.
type AdminHandler struct {
	results *service.ResultService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(results *service.ResultService) *AdminHandler {
	return &AdminHandler{results: results}
}

// ListRecords godoc
// GET /api/v1/admin/records?page=1&per_page=10
func (h *AdminHandler) ListRecords(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	records, pagination, err := h.results.ListRecords(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, records, pagination)
}

// GetRecord godoc
// GET /api/v1/admin/records/:email
func (h *AdminHandler) GetRecord(c *gin.Context) {
	record, err := h.results.GetRecord(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, record)
}
