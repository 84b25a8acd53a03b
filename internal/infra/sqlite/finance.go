package sqlite

import (
	"database/sql"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// ─── Accounts ───────────────────────────────────────────────────────────────

// InsertAccount creates an account.
func (d *DB) InsertAccount(a domain.Account) error {
	_, err := d.db.Exec(
		`INSERT INTO accounts (id, user_id, name, type, balance_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, string(a.Type), a.BalanceCents, a.CreatedAt.Unix(),
	)
	return err
}

// GetAccount retrieves one account; ErrAccountNotFound when absent.
func (d *DB) GetAccount(userID, id string) (*domain.Account, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, name, type, balance_cents, created_at
		 FROM accounts WHERE user_id = ? AND id = ?`, userID, id,
	)
	a, err := scanAccount(row)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

// ListAccounts returns all accounts for a user, oldest first.
func (d *DB) ListAccounts(userID string) ([]domain.Account, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, name, type, balance_cents, created_at
		 FROM accounts WHERE user_id = ? ORDER BY created_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// SetAccountBalance writes an account's balance.
func (d *DB) SetAccountBalance(userID, id string, balanceCents int64) error {
	result, err := d.db.Exec(
		`UPDATE accounts SET balance_cents = ? WHERE user_id = ? AND id = ?`,
		balanceCents, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	var typ string
	var createdAt int64

	err := s.Scan(&a.ID, &a.UserID, &a.Name, &typ, &a.BalanceCents, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Type = domain.AccountType(typ)
	a.CreatedAt = time.Unix(createdAt, 0)
	return &a, nil
}

// ─── Ledger ─────────────────────────────────────────────────────────────────

// InsertLedgerEntry appends one ledger row and returns its id.
func (d *DB) InsertLedgerEntry(e domain.LedgerEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO finance_ledger (user_id, tx_id, timestamp, type, entry_type, account, amount_cents, category, description, balance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.TxID, e.Timestamp.Unix(), string(e.Type), string(e.EntryType),
		e.Account, e.AmountCents, e.Category, e.Description, e.Balance,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// LedgerEntries returns recent ledger rows for a user, newest first.
// A non-positive limit returns every row.
func (d *DB) LedgerEntries(userID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.Query(
		`SELECT id, user_id, tx_id, timestamp, type, entry_type, account, amount_cents, category, description, balance
		 FROM finance_ledger WHERE user_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var ts int64
		var typ, entryType string
		if err := rows.Scan(&e.ID, &e.UserID, &e.TxID, &ts, &typ, &entryType,
			&e.Account, &e.AmountCents, &e.Category, &e.Description, &e.Balance); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		e.Type = domain.TxType(typ)
		e.EntryType = domain.EntryType(entryType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
