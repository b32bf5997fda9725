package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the file-export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler builds an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// GateList exports the gate list for a date as a spreadsheet.
// GET /api/v1/export/gate-list?date=2026-03-01
func (h *ExportHandler) GateList(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date is required")
		return
	}

	data, filename, err := h.exportSvc.GateListXLSX(c.Request.Context(), date)
	if err != nil {
		h.writeExportError(c, err)
		return
	}

	writeDownload(c, filename, xlsxContentType, data)
}

// CoordinatorCalendar exports a coordinator's appointments as iCalendar.
// GET /api/v1/export/calendar/:user_id
func (h *ExportHandler) CoordinatorCalendar(c *gin.Context) {
	data, filename, err := h.exportSvc.CoordinatorICS(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.writeExportError(c, err)
		return
	}

	writeDownload(c, filename, "text/calendar", data)
}

func (h *ExportHandler) writeExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15006, "date must use YYYY-MM-DD format")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}

func writeDownload(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}
