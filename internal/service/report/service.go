package report

import (
	"context"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/report"
)

type ReportService interface {
	TimesheetSummary(ctx context.Context, filter report.SummaryFilter) (report.SummaryResponse, error)
}

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) ReportService {
	return &ReportServiceImpl{reportRepo: reportRepo}
}

func (s *ReportServiceImpl) TimesheetSummary(ctx context.Context, filter report.SummaryFilter) (report.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.SummaryResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", filter.StartDate)
	end, _ := time.Parse("2006-01-02", filter.EndDate)

	employees, err := s.reportRepo.TimesheetSummary(ctx, start, end, filter.Department)
	if err != nil {
		return report.SummaryResponse{}, err
	}
	if employees == nil {
		employees = []report.EmployeeSummary{}
	}

	return report.SummaryResponse{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Employees: employees,
	}, nil
}
