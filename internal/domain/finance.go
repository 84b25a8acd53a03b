package domain

import "time"

// ─── Finance Types ──────────────────────────────────────────────────────────
// Amounts are integer cents throughout. Every operation writes matched
// debit/credit ledger rows, so SUM(debits) == SUM(credits) holds per user.

// AccountType distinguishes where money lives.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCash     AccountType = "cash"
)

// Account is a user-owned balance bucket.
type Account struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Name         string      `json:"name"`
	Type         AccountType `json:"type"`
	BalanceCents int64       `json:"balance_cents"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TxType categorizes a financial operation.
type TxType string

const (
	TxIncome   TxType = "income"
	TxExpense  TxType = "expense"
	TxTransfer TxType = "transfer"
)

// EntryType marks which side of the ledger a row sits on.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// LedgerEntry is one half of a double-entry transaction. The Balance column
// is the account balance after this entry was applied.
type LedgerEntry struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	TxID        string    `json:"tx_id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        TxType    `json:"type"`
	EntryType   EntryType `json:"entry_type"`
	Account     string    `json:"account"` // Account ID, or "external" for income/expense counterparts
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Balance     int64     `json:"balance"`
}

// ExternalAccount is the counterpart account for income and expenses.
const ExternalAccount = "external"
