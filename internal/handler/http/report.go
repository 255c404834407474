package http

import (
	"net/http"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/report"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
	reportService "github.com/clockwise-hr/timeclock-backend-go/internal/service/report"
)

type ReportHandler interface {
	TimesheetSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService reportService.ReportService
}

func NewReportHandler(svc reportService.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: svc}
}

func (h *reportHandlerImpl) TimesheetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := report.SummaryFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	if v := q.Get("department"); v != "" {
		filter.Department = &v
	}

	result, err := h.reportService.TimesheetSummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
