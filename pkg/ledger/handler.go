package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/bizcalc/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id           int             `json:"id"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	VndAmount    decimal.Decimal `json:"vndAmount"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Reference    string          `json:"reference,omitempty"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service, clock}
}

// ListTransactions godoc
// @Summary List ledger transactions
// @Description Newest date first. Repeat type or category to match any of several values.
// @Tags Ledger
// @Produce json
// @Param type query []string false "Transaction types"
// @Param category query []string false "Categories"
// @Success 200 {array} TransactionDTO
// @Router /api/transaction [get]
func (handler *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	query := r.URL.Query()
	filter := Filter{Types: nonBlank(query["type"]), Categories: nonBlank(query["category"])}

	transactions, err := handler.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	transactionsDTO := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		transactionsDTO = append(transactionsDTO, TransactionToDTO(t))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(transactionsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Tags Ledger
// @Accept json
// @Produce json
// @Param transaction body TransactionDTO true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/transaction [post]
func (handler *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating transaction")
	w.Header().Set("Content-Type", "application/json")
	transaction, err := decodeTransaction(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Save(r.Context(), transaction)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetTransaction godoc
// @Summary Get a transaction by ID
// @Tags Ledger
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} TransactionDTO
// @Failure 404 {string} string "Transaction Not Found"
// @Router /api/transaction/{transactionId} [get]
func (handler *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	transactionId, err := strconv.Atoi(mux.Vars(r)["transactionId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transaction, err := handler.service.GetById(r.Context(), transactionId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(transaction)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateTransaction godoc
// @Summary Overwrite a transaction
// @Tags Ledger
// @Accept json
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Param transaction body TransactionDTO true "Transaction"
// @Success 200 {object} TransactionDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Transaction Not Found"
// @Router /api/transaction/{transactionId} [put]
func (handler *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating transaction")
	w.Header().Set("Content-Type", "application/json")
	transactionId, err := strconv.Atoi(mux.Vars(r)["transactionId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	transaction, err := decodeTransaction(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), transactionId, transaction)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !updated {
		http.Error(w, ErrTransactionNotFound.Error(), http.StatusNotFound)
		return
	}

	stored, err := handler.service.GetById(r.Context(), transactionId)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags Ledger
// @Param transactionId path int true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Transaction Not Found"
// @Router /api/transaction/{transactionId} [delete]
func (handler *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting transaction")
	transactionId, err := strconv.Atoi(mux.Vars(r)["transactionId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := handler.service.Delete(r.Context(), transactionId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, ErrTransactionNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportTransactions godoc
// @Summary Download every transaction
// @Tags Ledger
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {string} string "Bad Request"
// @Router /api/transaction/export [get]
func (handler *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		http.Error(w, fmt.Sprintf("unsupported export format %q", format), http.StatusBadRequest)
		return
	}

	table, err := handler.service.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var body []byte
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		body, err = RenderXLSX(table)
	} else {
		var csv string
		csv, err = RenderCSV(table)
		body = []byte(csv)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", handler.clock.Now().Format("20060102"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Errorf("failed to write transaction export: %v", err)
	}
}

// nonBlank drops empty values so "?type=" leaves the dimension unrestricted.
func nonBlank(values []string) []string {
	var result []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			result = append(result, v)
		}
	}
	return result
}

func decodeTransaction(r *http.Request) (Transaction, error) {
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return Transaction{}, err
	}
	return DTOToTransaction(dto)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransaction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func TransactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Id:           t.Id,
		Date:         t.Date.Format(DateLayout),
		Type:         t.Type,
		Amount:       t.Amount,
		Currency:     t.Currency,
		VndAmount:    t.VndAmount,
		Description:  t.Description,
		Category:     t.Category,
		Reference:    t.Reference,
		ExchangeRate: t.ExchangeRate,
		CreatedAt:    t.CreatedAt,
	}
}

func DTOToTransaction(dto TransactionDTO) (Transaction, error) {
	var date time.Time
	if dto.Date != "" {
		var err error
		date, err = time.Parse(DateLayout, dto.Date)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid date %q: %w", dto.Date, err)
		}
	}
	return Transaction{
		Id:           dto.Id,
		Date:         date,
		Type:         dto.Type,
		Amount:       dto.Amount,
		Currency:     dto.Currency,
		VndAmount:    dto.VndAmount,
		Description:  dto.Description,
		Category:     dto.Category,
		Reference:    dto.Reference,
		ExchangeRate: dto.ExchangeRate,
	}, nil
}
