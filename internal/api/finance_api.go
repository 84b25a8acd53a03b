package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studyflow-app/studyflow/internal/domain"
)

type createAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := s.finance.CreateAccount(userID, req.Name, domain.AccountType(req.Type))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.finance.Accounts(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
	})
}

type transactionRequest struct {
	Type        string `json:"type"` // income, expense, transfer
	AccountID   string `json:"account_id"`
	ToAccountID string `json:"to_account_id"` // transfer only
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch domain.TxType(req.Type) {
	case domain.TxIncome:
		err = s.finance.Income(userID, req.AccountID, req.AmountCents, req.Category, req.Description)
	case domain.TxExpense:
		err = s.finance.Expense(userID, req.AccountID, req.AmountCents, req.Category, req.Description)
	case domain.TxTransfer:
		err = s.finance.Transfer(userID, req.AccountID, req.ToAccountID, req.AmountCents, req.Description)
	default:
		writeError(w, http.StatusBadRequest, "type must be income, expense, or transfer")
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrInsufficientFunds),
			errors.Is(err, domain.ErrSameAccount):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := s.finance.History(chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}
