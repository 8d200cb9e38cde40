package http

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/shared/civil"
)

func sampleTransaction(id int64, amount string, note *string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:         id,
		UserID:     1,
		CategoryID: 4,
		Amount:     decimal.RequireFromString(amount),
		Type:       transaction.TypeExpense,
		Note:       note,
		Date:       civil.NewDate(2026, time.March, 14),
		CreatedAt:  time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
		Category: transaction.CategorySnapshot{
			ID:    4,
			Name:  "Groceries",
			Type:  transaction.TypeExpense,
			Color: "#f97316",
		},
	}
}

func expenseCategory() *MockCategoryRepo {
	return &MockCategoryRepo{
		GetByIDFunc: func(ctx context.Context, userID, id int64) (*category.Category, error) {
			if id != 4 {
				return nil, category.ErrCategoryNotFound
			}
			return &category.Category{ID: 4, UserID: userID, Name: "Groceries", Type: category.TypeExpense, Color: "#f97316"}, nil
		},
	}
}

func newTestTransactionHandler(repo *MockTransactionRepo) *TransactionHandler {
	return NewTransactionHandler(transaction.NewService(repo, expenseCategory()))
}

func TestTransactionHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			body:           `{"category_id":4,"amount":"12.5","type":"expense","note":"  weekly shop ","date":"2026-03-14"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Numeric Amount",
			body:           `{"category_id":4,"amount":12.5,"type":"expense","date":"2026-03-14"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Type Mismatch",
			body:           `{"category_id":4,"amount":"12.50","type":"income","date":"2026-03-14"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Transaction type must match the selected category type",
		},
		{
			name:           "Unknown Category",
			body:           `{"category_id":99,"amount":"12.50","type":"expense","date":"2026-03-14"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Category not found",
		},
		{
			name:           "Zero Amount",
			body:           `{"category_id":4,"amount":"0","type":"expense","date":"2026-03-14"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "amount must be greater than zero",
		},
		{
			name:           "Three Decimal Places",
			body:           `{"category_id":4,"amount":"1.005","type":"expense","date":"2026-03-14"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "amount must have at most 2 decimal places",
		},
		{
			name:           "Bad Date",
			body:           `{"category_id":4,"amount":"1.00","type":"expense","date":"14/03/2026"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "Missing Date",
			body:           `{"category_id":4,"amount":"1.00","type":"expense"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTransactionRepo{
				CreateFunc: func(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
					return sampleTransaction(10, params.Amount.String(), params.Note), nil
				},
			}
			handler := newTestTransactionHandler(repo)

			req := withUser(httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(tt.body)), 1)
			rr := httptest.NewRecorder()
			handler.HandleCreate(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedError != "" {
				var body ErrorResponse
				json.NewDecoder(rr.Body).Decode(&body)
				if body.Error != tt.expectedError {
					t.Errorf("error = %q, want %q", body.Error, tt.expectedError)
				}
				return
			}

			var got map[string]any
			if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got["amount"] != "12.50" {
				t.Errorf("amount = %v, want \"12.50\"", got["amount"])
			}
			if got["date"] != "2026-03-14" {
				t.Errorf("date = %v", got["date"])
			}
			cat, _ := got["category"].(map[string]any)
			if cat["name"] != "Groceries" {
				t.Errorf("category = %v", got["category"])
			}
		})
	}
}

func TestTransactionHandler_CreateTrimsNote(t *testing.T) {
	var stored *string
	repo := &MockTransactionRepo{
		CreateFunc: func(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
			stored = params.Note
			return sampleTransaction(10, "1", params.Note), nil
		},
	}
	handler := newTestTransactionHandler(repo)

	body := `{"category_id":4,"amount":"1","type":"expense","note":"   ","date":"2026-03-14"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)), 1)
	rr := httptest.NewRecorder()
	handler.HandleCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if stored != nil {
		t.Errorf("blank note stored as %q, want null", *stored)
	}
}

func TestTransactionHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedError  string
		checkFilter    func(t *testing.T, f transaction.Filter, limit, offset int)
	}{
		{
			name:           "Defaults",
			query:          "",
			expectedStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f transaction.Filter, limit, offset int) {
				if limit != 20 || offset != 0 {
					t.Errorf("limit/offset = %d/%d, want 20/0", limit, offset)
				}
			},
		},
		{
			name:           "Filters And Page",
			query:          "?page=3&page_size=10&type=expense&category_id=4&start_date=2026-01-01&end_date=2026-03-31",
			expectedStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f transaction.Filter, limit, offset int) {
				if limit != 10 || offset != 20 {
					t.Errorf("limit/offset = %d/%d, want 10/20", limit, offset)
				}
				if f.Type == nil || *f.Type != transaction.TypeExpense {
					t.Errorf("type filter = %v", f.Type)
				}
				if f.CategoryID == nil || *f.CategoryID != 4 {
					t.Errorf("category filter = %v", f.CategoryID)
				}
				if f.StartDate == nil || f.StartDate.String() != "2026-01-01" {
					t.Errorf("start date = %v", f.StartDate)
				}
			},
		},
		{
			name:           "Page Size Too Large",
			query:          "?page_size=101",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "page_size must be between 1 and 100",
		},
		{
			name:           "Page Zero",
			query:          "?page=0",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "page must be greater than or equal to 1",
		},
		{
			name:           "Page Not A Number",
			query:          "?page=two",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "page must be an integer",
		},
		{
			name:           "Invalid Date",
			query:          "?start_date=2026-13-01",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "start_date must be a date in YYYY-MM-DD format",
		},
		{
			name:           "Inverted Range",
			query:          "?start_date=2026-02-01&end_date=2026-01-01",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "start_date must be before or equal to end_date",
		},
		{
			name:           "Invalid Type",
			query:          "?type=transfer",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "type must be one of: income, expense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTransactionRepo{
				CountFunc: func(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
					return 45, nil
				},
				ListFunc: func(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
					if tt.checkFilter != nil {
						tt.checkFilter(t, filter, limit, offset)
					}
					return []*transaction.Transaction{sampleTransaction(1, "9.99", nil)}, nil
				},
			}
			handler := newTestTransactionHandler(repo)

			req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil), 1)
			rr := httptest.NewRecorder()
			handler.HandleList(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedError != "" {
				var body ErrorResponse
				json.NewDecoder(rr.Body).Decode(&body)
				if body.Error != tt.expectedError {
					t.Errorf("error = %q, want %q", body.Error, tt.expectedError)
				}
				return
			}

			var got struct {
				Items      []map[string]any       `json:"items"`
				Pagination transaction.Pagination `json:"pagination"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got.Items) != 1 || got.Items[0]["amount"] != "9.99" {
				t.Errorf("items = %v", got.Items)
			}
			if got.Pagination.Total != 45 {
				t.Errorf("total = %d, want 45", got.Pagination.Total)
			}
		})
	}
}

func TestTransactionHandler_ListEmptyPage(t *testing.T) {
	handler := newTestTransactionHandler(&MockTransactionRepo{})

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions?page=9", nil), 1)
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"items":[]`) {
		t.Errorf("body = %s, want empty items array", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"total_pages":0`) {
		t.Errorf("body = %s, want total_pages 0", rr.Body.String())
	}
}

func TestTransactionHandler_Get(t *testing.T) {
	repo := &MockTransactionRepo{
		GetByIDFunc: func(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
			if userID != 1 || id != 10 {
				return nil, transaction.ErrTransactionNotFound
			}
			return sampleTransaction(10, "3", nil), nil
		},
	}
	handler := newTestTransactionHandler(repo)

	tests := []struct {
		name           string
		userID         int64
		id             string
		expectedStatus int
	}{
		{"Owner", 1, "10", http.StatusOK},
		{"Other User", 2, "10", http.StatusNotFound},
		{"Missing", 1, "11", http.StatusNotFound},
		{"Invalid ID", 1, "-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions/"+tt.id, nil), tt.userID)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()
			handler.HandleGet(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK && !strings.Contains(rr.Body.String(), `"amount":"3.00"`) {
				t.Errorf("body = %s", rr.Body.String())
			}
		})
	}
}

func TestTransactionHandler_Update(t *testing.T) {
	var updated transaction.Params
	repo := &MockTransactionRepo{
		GetByIDFunc: func(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
			if id != 10 {
				return nil, transaction.ErrTransactionNotFound
			}
			return sampleTransaction(10, "3", nil), nil
		},
		UpdateFunc: func(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error) {
			updated = params
			return sampleTransaction(id, params.Amount.String(), params.Note), nil
		},
	}
	handler := newTestTransactionHandler(repo)

	body := `{"category_id":4,"amount":"100","type":"expense","note":null,"date":"2026-03-15"}`

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/transactions/10", strings.NewReader(body)), 1)
	req.SetPathValue("id", "10")
	rr := httptest.NewRecorder()
	handler.HandleUpdate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	if !updated.Amount.Equal(decimal.NewFromInt(100)) || updated.Date.String() != "2026-03-15" {
		t.Errorf("params = %+v", updated)
	}
	if !strings.Contains(rr.Body.String(), `"amount":"100.00"`) {
		t.Errorf("body = %s", rr.Body.String())
	}

	req = withUser(httptest.NewRequest(http.MethodPut, "/api/transactions/11", strings.NewReader(body)), 1)
	req.SetPathValue("id", "11")
	rr = httptest.NewRecorder()
	handler.HandleUpdate(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("missing transaction status = %d, want 404", rr.Code)
	}
}

func TestTransactionHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		deleteErr      error
		expectedStatus int
	}{
		{"Success", nil, http.StatusNoContent},
		{"Not Found", transaction.ErrTransactionNotFound, http.StatusNotFound},
		{"Database Down", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTransactionRepo{
				DeleteFunc: func(ctx context.Context, userID, id int64) error {
					return tt.deleteErr
				},
			}
			handler := newTestTransactionHandler(repo)

			req := withUser(httptest.NewRequest(http.MethodDelete, "/api/transactions/10", nil), 1)
			req.SetPathValue("id", "10")
			rr := httptest.NewRecorder()
			handler.HandleDelete(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusInternalServerError && strings.Contains(rr.Body.String(), "connection refused") {
				t.Error("internal error text leaked to the client")
			}
		})
	}
}

func exportRepo() *MockTransactionRepo {
	note := "weekly, shop"
	return &MockTransactionRepo{
		ListFunc: func(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
			if limit != 0 {
				return nil, errors.New("export must not paginate")
			}
			return []*transaction.Transaction{
				sampleTransaction(1, "12.5", &note),
				sampleTransaction(2, "3", nil),
			}, nil
		},
	}
}

func TestTransactionHandler_ExportCSV(t *testing.T) {
	handler := newTestTransactionHandler(exportRepo())

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions/export?type=expense", nil), 1)
	rr := httptest.NewRecorder()
	handler.HandleExport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="transactions_`) || !strings.HasSuffix(cd, `.csv"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	want := [][]string{
		{"date", "type", "category", "amount", "note"},
		{"2026-03-14", "expense", "Groceries", "12.50", "weekly, shop"},
		{"2026-03-14", "expense", "Groceries", "3.00", ""},
	}
	if len(records) != len(want) {
		t.Fatalf("rows = %d, want %d", len(records), len(want))
	}
	for i := range want {
		if strings.Join(records[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestTransactionHandler_ExportXLSX(t *testing.T) {
	handler := newTestTransactionHandler(exportRepo())

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions/export?format=xlsx", nil), 1)
	rr := httptest.NewRecorder()
	handler.HandleExport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.HasSuffix(cd, `.xlsx"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "date" || rows[1][2] != "Groceries" {
		t.Errorf("rows = %v", rows)
	}
}

func TestTransactionHandler_ExportBadFormat(t *testing.T) {
	handler := newTestTransactionHandler(exportRepo())

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions/export?format=pdf", nil), 1)
	rr := httptest.NewRecorder()
	handler.HandleExport(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}
