package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/shared/civil"
)

type TransactionHandler struct {
	transactions *transaction.Service
}

func NewTransactionHandler(transactions *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// TransactionRequest is the body of create and update; update replaces
// every field.
type TransactionRequest struct {
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       category.Type   `json:"type"`
	Note       *string         `json:"note"`
	Date       civil.Date      `json:"date"`
}

func (req TransactionRequest) params() transaction.Params {
	return transaction.Params{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Type:       req.Type,
		Note:       req.Note,
		Date:       req.Date,
	}
}

func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.transactions.ListTransactions(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TransactionListResponse{
		Items:      toTransactionResponses(result.Items),
		Pagination: result.Pagination,
	})
}

func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.transactions.CreateTransaction(r.Context(), userID, req.params())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (h *TransactionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.transactions.GetTransaction(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.transactions.UpdateTransaction(r.Context(), userID, id, req.params())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.transactions.DeleteTransaction(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExport downloads every transaction matching the list filters as CSV,
// or as an XLSX workbook with ?format=xlsx.
func (h *TransactionHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format, err := parseExportFormat(q.Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter, err := parseFilter(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.transactions.ExportTransactions(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := writeExport(w, format, civil.Today(), items); err != nil {
		writeError(w, r, err)
	}
}
