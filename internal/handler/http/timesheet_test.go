package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTimesheetID = "3f2f7a1e-8d4b-4c6a-9e2f-5a1b2c3d4e5f"
	testUnknownID   = "b7e2c9d0-91f3-4abc-8def-0123456789ab"
	testEmployeeID  = "c1a2b3c4-d5e6-47f8-9a0b-c1d2e3f4a5b6"
)

// fakeTimesheetService records the last request and returns canned results.
type fakeTimesheetService struct {
	adjustReq         timesheet.AdjustRequest
	adjustErr         error
	bulkResult        timesheet.BulkAdjustResponse
	getErr            error
	lastEmployeeID    string
	employeeAdjustErr error
}

func (f *fakeTimesheetService) Generate(_ context.Context, _ timesheet.GenerateRequest) (timesheet.GenerateResponse, error) {
	return timesheet.GenerateResponse{Created: []timesheet.TimesheetResponse{}}, nil
}

func (f *fakeTimesheetService) Get(_ context.Context, id string) (timesheet.TimesheetResponse, error) {
	if f.getErr != nil {
		return timesheet.TimesheetResponse{}, f.getErr
	}
	return timesheet.TimesheetResponse{ID: id}, nil
}

func (f *fakeTimesheetService) List(_ context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	return timesheet.ListTimesheetResponse{Data: []timesheet.TimesheetResponse{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func (f *fakeTimesheetService) Adjust(_ context.Context, req timesheet.AdjustRequest) (timesheet.TimesheetResponse, error) {
	f.adjustReq = req
	if f.adjustErr != nil {
		return timesheet.TimesheetResponse{}, f.adjustErr
	}
	return timesheet.TimesheetResponse{ID: req.TimesheetID}, nil
}

func (f *fakeTimesheetService) BulkAdjust(_ context.Context, _ timesheet.BulkAdjustRequest) (timesheet.BulkAdjustResponse, error) {
	return f.bulkResult, nil
}

func (f *fakeTimesheetService) Approve(_ context.Context, req timesheet.ApprovalRequest) (timesheet.ApprovalResponse, error) {
	return timesheet.ApprovalResponse{Count: int64(len(req.TimesheetIDs))}, nil
}

func (f *fakeTimesheetService) Reject(_ context.Context, req timesheet.ApprovalRequest) (timesheet.ApprovalResponse, error) {
	return timesheet.ApprovalResponse{Count: int64(len(req.TimesheetIDs))}, nil
}

func (f *fakeTimesheetService) ListAdjustments(_ context.Context, _ string, _ int) ([]timesheet.AdjustmentResponse, error) {
	return []timesheet.AdjustmentResponse{}, nil
}

func (f *fakeTimesheetService) ListAdjustmentsByEmployee(_ context.Context, employeeID string, _ int) ([]timesheet.AdjustmentResponse, error) {
	f.lastEmployeeID = employeeID
	if f.employeeAdjustErr != nil {
		return nil, f.employeeAdjustErr
	}
	return []timesheet.AdjustmentResponse{}, nil
}

func newTestRouter(svc timesheet.TimesheetService) *chi.Mux {
	h := NewTimesheetHandler(svc)
	r := chi.NewRouter()
	r.Route("/timesheets", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/generate", h.Generate)
		r.Post("/bulk-adjust", h.BulkAdjust)
		r.Post("/approve", h.Approve)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/adjust", h.Adjust)
		})
	})
	r.Get("/employees/{id}/adjustments", h.ListEmployeeAdjustments)
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestTimesheetHandler_Adjust_PassesURLParamToService(t *testing.T) {
	svc := &fakeTimesheetService{}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"type":   "add",
		"hours":  "1.5",
		"reason": "missed clock-out",
	})
	req := httptest.NewRequest(http.MethodPost, "/timesheets/"+testTimesheetID+"/adjust", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testTimesheetID, svc.adjustReq.TimesheetID)
	assert.Equal(t, "add", svc.adjustReq.Type)
	assert.True(t, svc.adjustReq.Hours.Equal(decimal.RequireFromString("1.5")))
}

func TestTimesheetHandler_Adjust_InvalidBody(t *testing.T) {
	router := newTestRouter(&fakeTimesheetService{})

	req := httptest.NewRequest(http.MethodPost, "/timesheets/"+testTimesheetID+"/adjust", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestTimesheetHandler_Get_NotFoundMapsTo404(t *testing.T) {
	router := newTestRouter(&fakeTimesheetService{getErr: timesheet.ErrTimesheetNotFound})

	req := httptest.NewRequest(http.MethodGet, "/timesheets/"+testUnknownID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestTimesheetHandler_Get_MalformedIDIs400(t *testing.T) {
	svc := &fakeTimesheetService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/timesheets/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestTimesheetHandler_ListEmployeeAdjustments(t *testing.T) {
	svc := &fakeTimesheetService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/employees/"+testEmployeeID+"/adjustments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testEmployeeID, svc.lastEmployeeID)
}

func TestTimesheetHandler_ListEmployeeAdjustments_MalformedIDIs400(t *testing.T) {
	svc := &fakeTimesheetService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/employees/not-a-uuid/adjustments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.lastEmployeeID)
}

func TestTimesheetHandler_BulkAdjust_PartialFailureIs207(t *testing.T) {
	svc := &fakeTimesheetService{bulkResult: timesheet.BulkAdjustResponse{
		Succeeded: []string{"ts-1"},
		Failed:    []timesheet.BulkAdjustFailure{{ID: "ts-2", Error: "timesheet not found"}},
	}}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"timesheet_ids": []string{"ts-1", "ts-2"},
		"type":          "add",
		"hours":         "1",
		"reason":        "bulk fix",
	})
	req := httptest.NewRequest(http.MethodPost, "/timesheets/bulk-adjust", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMultiStatus, rec.Code)
}

func TestTimesheetHandler_BulkAdjust_AllSucceededIs200(t *testing.T) {
	svc := &fakeTimesheetService{bulkResult: timesheet.BulkAdjustResponse{
		Succeeded: []string{"ts-1", "ts-2"},
		Failed:    []timesheet.BulkAdjustFailure{},
	}}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"timesheet_ids": []string{"ts-1", "ts-2"},
		"type":          "subtract",
		"hours":         "0.5",
		"reason":        "break backfill",
	})
	req := httptest.NewRequest(http.MethodPost, "/timesheets/bulk-adjust", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTimesheetHandler_List_ParsesQueryFilters(t *testing.T) {
	router := newTestRouter(&fakeTimesheetService{})

	req := httptest.NewRequest(http.MethodGet, "/timesheets?status=pending&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.Limit)
}

func TestTimesheetHandler_Generate_Returns201(t *testing.T) {
	router := newTestRouter(&fakeTimesheetService{})

	body, _ := json.Marshal(map[string]string{
		"period_start": "2026-03-01",
		"period_end":   "2026-03-07",
	})
	req := httptest.NewRequest(http.MethodPost, "/timesheets/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
