package http

import (
	"log/slog"
	"net/http"

	"github.com/codemyown/leave-mangement-system/internal/handler/http/response"
	reportservice "github.com/codemyown/leave-mangement-system/internal/service/report"
)

type ReportHandler interface {
	DepartmentReport(w http.ResponseWriter, r *http.Request)
	ExportMyHistory(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *reportservice.ReportServiceImpl
}

func NewReportHandler(reportService *reportservice.ReportServiceImpl) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// DepartmentReport implements ReportHandler.
func (h *ReportHandlerImpl) DepartmentReport(w http.ResponseWriter, r *http.Request) {
	aggregates, err := h.reportService.DepartmentReport(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, aggregates)
}

// ExportMyHistory implements ReportHandler. Streams the caller's leave
// history as a PDF download.
func (h *ReportHandlerImpl) ExportMyHistory(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-history.pdf"`)

	if err := h.reportService.ExportLeaveHistory(r.Context(), userID, w); err != nil {
		// Headers may already be out; log instead of rewriting the response.
		slog.Error("Failed to export leave history", "user_id", userID, "error", err)
	}
}
