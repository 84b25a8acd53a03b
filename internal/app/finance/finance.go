// Package finance implements the personal finance ledger. Every operation
// creates matched DEBIT/CREDIT entries, so SUM(debits) == SUM(credits) is an
// invariant per user. Income and expenses balance against a virtual
// "external" account; transfers balance between two real accounts.
package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/infra/metrics"
	"github.com/studyflow-app/studyflow/internal/infra/sqlite"
)

// Service manages accounts and the transaction ledger.
type Service struct {
	db *sqlite.DB
}

// NewService creates a finance service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// CreateAccount opens a new account with a zero balance.
func (s *Service) CreateAccount(userID, name string, typ domain.AccountType) (domain.Account, error) {
	account := domain.Account{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Type:      typ,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertAccount(account); err != nil {
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

// Accounts lists the user's accounts.
func (s *Service) Accounts(userID string) ([]domain.Account, error) {
	return s.db.ListAccounts(userID)
}

// Income records money arriving into an account.
// DEBIT external (source), CREDIT the account (destination).
func (s *Service) Income(userID, accountID string, amountCents int64, category, description string) error {
	if amountCents <= 0 {
		return domain.ErrInvalidAmount
	}

	account, err := s.db.GetAccount(userID, accountID)
	if err != nil {
		return err
	}

	newBalance := account.BalanceCents + amountCents
	if err := s.writePair(userID, domain.TxIncome, category, description,
		entry{domain.ExternalAccount, domain.EntryDebit, amountCents, 0},
		entry{accountID, domain.EntryCredit, amountCents, newBalance},
	); err != nil {
		return err
	}
	return s.db.SetAccountBalance(userID, accountID, newBalance)
}

// Expense records money leaving an account.
// DEBIT the account, CREDIT external. Rejected when funds are insufficient.
func (s *Service) Expense(userID, accountID string, amountCents int64, category, description string) error {
	if amountCents <= 0 {
		return domain.ErrInvalidAmount
	}

	account, err := s.db.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	if account.BalanceCents < amountCents {
		return domain.ErrInsufficientFunds
	}

	newBalance := account.BalanceCents - amountCents
	if err := s.writePair(userID, domain.TxExpense, category, description,
		entry{accountID, domain.EntryDebit, amountCents, newBalance},
		entry{domain.ExternalAccount, domain.EntryCredit, amountCents, 0},
	); err != nil {
		return err
	}
	return s.db.SetAccountBalance(userID, accountID, newBalance)
}

// Transfer moves money between two accounts of the same user.
func (s *Service) Transfer(userID, fromID, toID string, amountCents int64, description string) error {
	if amountCents <= 0 {
		return domain.ErrInvalidAmount
	}
	if fromID == toID {
		return domain.ErrSameAccount
	}

	from, err := s.db.GetAccount(userID, fromID)
	if err != nil {
		return err
	}
	to, err := s.db.GetAccount(userID, toID)
	if err != nil {
		return err
	}
	if from.BalanceCents < amountCents {
		return domain.ErrInsufficientFunds
	}

	fromBalance := from.BalanceCents - amountCents
	toBalance := to.BalanceCents + amountCents
	if err := s.writePair(userID, domain.TxTransfer, "", description,
		entry{fromID, domain.EntryDebit, amountCents, fromBalance},
		entry{toID, domain.EntryCredit, amountCents, toBalance},
	); err != nil {
		return err
	}
	if err := s.db.SetAccountBalance(userID, fromID, fromBalance); err != nil {
		return err
	}
	return s.db.SetAccountBalance(userID, toID, toBalance)
}

// History returns recent ledger rows for a user.
func (s *Service) History(userID string, limit int) ([]domain.LedgerEntry, error) {
	return s.db.LedgerEntries(userID, limit)
}

// entry is one half of a matched pair.
type entry struct {
	account   string
	entryType domain.EntryType
	amount    int64
	balance   int64
}

// writePair writes the matched DEBIT/CREDIT rows for one transaction.
func (s *Service) writePair(userID string, typ domain.TxType, category, description string, a, b entry) error {
	txID := uuid.NewString()
	now := time.Now()

	for _, e := range []entry{a, b} {
		_, err := s.db.InsertLedgerEntry(domain.LedgerEntry{
			UserID:      userID,
			TxID:        txID,
			Timestamp:   now,
			Type:        typ,
			EntryType:   e.entryType,
			Account:     e.account,
			AmountCents: e.amount,
			Category:    category,
			Description: description,
			Balance:     e.balance,
		})
		if err != nil {
			return fmt.Errorf("%s %s: %w", e.entryType, e.account, err)
		}
		metrics.LedgerEntries.WithLabelValues(string(typ)).Inc()
	}
	return nil
}
