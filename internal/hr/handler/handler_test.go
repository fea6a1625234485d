package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"minehub/internal/hr/service"
	departmentStore "minehub/internal/hr/store/department"
	employeeStore "minehub/internal/hr/store/employee"
	leaveStore "minehub/internal/hr/store/leave"
	performanceStore "minehub/internal/hr/store/performance"
	mineStore "minehub/internal/ops/store/mine"
	"minehub/internal/resolver"
	"minehub/pkg/platform/tx"
)

func newHRRouter(t *testing.T) http.Handler {
	t.Helper()
	departments := departmentStore.NewInMemory()
	employees := employeeStore.NewInMemory()
	leave := leaveStore.NewInMemory()
	performance := performanceStore.NewInMemory()
	mines := mineStore.NewInMemory()

	res := resolver.New(employees, departments, mines, leave, performance)
	svc := service.New(departments, employees, leave, performance, mines, res, tx.NopRunner{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Message
}

func TestDepartmentLifecycle(t *testing.T) {
	router := newHRRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": "Mining"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating department, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeMessage(t, rec); got != "Department 'Mining' has been created." {
		t.Fatalf("unexpected message: %q", got)
	}

	rec = doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": "Mining"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate department, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/departments/name/Mining", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching department, got %d", rec.Code)
	}
	var dep struct {
		DepartmentName string `json:"departmentName"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&dep); err != nil {
		t.Fatalf("failed to decode department: %v", err)
	}
	if dep.DepartmentName != "Mining" {
		t.Fatalf("expected department Mining, got %q", dep.DepartmentName)
	}

	rec = doJSON(t, router, http.MethodDelete, "/departments/name/Mining", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting department, got %d", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "Department 'Mining' has been deleted." {
		t.Fatalf("unexpected message: %q", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/departments/name/Mining", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDepartmentValidationEnvelope(t *testing.T) {
	router := newHRRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": "M"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short name, got %d", rec.Code)
	}
	var resp struct {
		Code   int      `json:"code"`
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode validation envelope: %v", err)
	}
	if resp.Code != http.StatusBadRequest || len(resp.Errors) != 1 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	want := "'Department Name' must be between 2 and 20 characters. You entered 1 characters."
	if resp.Errors[0] != want {
		t.Fatalf("unexpected error message: %q", resp.Errors[0])
	}
}

func TestDeleteDepartmentWithEmployeesNeedsRetrenchFlag(t *testing.T) {
	router := newHRRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": "Mining"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating department, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"firstName": "John", "lastName": "Doe", "position": "Digger", "department": "Mining", "salary": 24000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating employee, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeMessage(t, rec); got != "Employee 'John Doe' has been created." {
		t.Fatalf("unexpected message: %q", got)
	}

	rec = doJSON(t, router, http.MethodDelete, "/departments/name/Mining", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without retrench flag, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/departments/name/Mining?retrenchEmployees=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with retrench flag, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/employees/name/John%20Doe", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for retrenched employee, got %d", rec.Code)
	}
}

func TestLeaveFlow(t *testing.T) {
	router := newHRRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": "Mining"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating department, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"firstName": "John", "lastName": "Doe", "position": "Digger", "department": "Mining",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating employee, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/leave", map[string]any{
		"employeeName": "John Doe", "leaveType": "annual", "amount": 20,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating leave, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeMessage(t, rec); got != "Leave of type ANNUAL successfully added for employee name 'John Doe'." {
		t.Fatalf("unexpected message: %q", got)
	}

	rec = doJSON(t, router, http.MethodPatch, "/leave", map[string]any{
		"employeeName": "John Doe", "leaveType": "annual", "amount": -5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 adjusting leave, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeMessage(t, rec); got != "Leave of type annual successfully modified for employee named 'John Doe'." {
		t.Fatalf("unexpected message: %q", got)
	}

	rec = doJSON(t, router, http.MethodPatch, "/leave", map[string]any{
		"employeeName": "John Doe", "leaveType": "annual", "amount": -100,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative balance, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/leave/name/John%20Doe", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing leave, got %d", rec.Code)
	}
	var rows []struct {
		LeaveType string `json:"leaveType"`
		Amount    int    `json:"amount"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode leave rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Amount != 15 {
		t.Fatalf("expected one row with amount 15, got %+v", rows)
	}

	rec = doJSON(t, router, http.MethodDelete, "/leave?employeeName=John+Doe&leaveType=annual", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting leave, got %d", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "Leave of type annual successfully deleted from employee John Doe." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestPerformanceFlow(t *testing.T) {
	router := newHRRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": "Mining"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating department, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"firstName": "John", "lastName": "Doe", "position": "Digger", "department": "Mining",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating employee, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/performance", map[string]any{
		"employeeName": "John Doe", "performanceType": "safety", "rating": 8,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 upserting performance, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeMessage(t, rec); got != "Performance of type safety successfully modified for employee named 'John Doe'." {
		t.Fatalf("unexpected message: %q", got)
	}

	// Second upsert blends: 8/4 = 2, (2+6)/1.25 = 6.4 -> 6.
	rec = doJSON(t, router, http.MethodPut, "/performance", map[string]any{
		"employeeName": "John Doe", "performanceType": "safety", "rating": 6,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat upsert, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/performance/name/John%20Doe", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing performance, got %d", rec.Code)
	}
	var rows []struct {
		PerformanceType string `json:"performanceType"`
		Rating          *int   `json:"rating"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode performance rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Rating == nil || *rows[0].Rating != 6 {
		t.Fatalf("expected one row rated 6, got %+v", rows)
	}

	rec = doJSON(t, router, http.MethodDelete, "/performance?employeeName=John+Doe&performanceType=output", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting unknown performance, got %d", rec.Code)
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if envelope.Message != "There is no Performance of type output to delete from employee John Doe." {
		t.Fatalf("unexpected message: %q", envelope.Message)
	}
}

func TestEmployeeUpdate(t *testing.T) {
	router := newHRRouter(t)

	for _, name := range []string{"Mining", "Logistics"} {
		rec := doJSON(t, router, http.MethodPost, "/departments", map[string]any{"departmentName": name})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 creating department %s, got %d", name, rec.Code)
		}
	}
	rec := doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"firstName": "John", "lastName": "Doe", "position": "Digger", "department": "Mining",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 creating employee, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/employees/update", map[string]any{
		"firstName": "John", "lastName": "Doe", "position": "Surveyor", "department": "Logistics", "salary": 30000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating employee, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeMessage(t, rec); got != "Operation for employee 'John Doe' was successful." {
		t.Fatalf("unexpected message: %q", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/employees/name/John%20Doe", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching employee, got %d", rec.Code)
	}
	var detail struct {
		Position   string `json:"position"`
		Department string `json:"department"`
		Manager    string `json:"manager"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode employee detail: %v", err)
	}
	if detail.Position != "Surveyor" || detail.Department != "Logistics" || detail.Manager != "None" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}
