// Package export writes a user's data to an XLSX workbook: one sheet of
// study sessions and one of finance ledger entries.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// Store is the slice of the database the exporter reads from.
type Store interface {
	ListSessions(userID string) ([]domain.StudySession, error)
	LedgerEntries(userID string, limit int) ([]domain.LedgerEntry, error)
}

const (
	sessionsSheet = "Study Sessions"
	ledgerSheet   = "Transactions"
)

// Workbook builds an XLSX workbook for the user and writes it to path.
func Workbook(store Store, userID, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sessionsSheet)
	if err := writeSessions(f, store, userID); err != nil {
		return err
	}
	if _, err := f.NewSheet(ledgerSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeLedger(f, store, userID); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSessions(f *excelize.File, store Store, userID string) error {
	sessions, err := store.ListSessions(userID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	header := []interface{}{"Date", "Subject", "Area", "Minutes", "XP", "Notes"}
	if err := f.SetSheetRow(sessionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range sessions {
		row := []interface{}{
			s.Date.Format("2006-01-02"),
			s.Subject,
			string(s.Area),
			s.DurationMinutes,
			s.XPEarned,
			s.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sessionsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeLedger(f *excelize.File, store Store, userID string) error {
	entries, err := store.LedgerEntries(userID, 0)
	if err != nil {
		return fmt.Errorf("list ledger entries: %w", err)
	}

	header := []interface{}{"Timestamp", "Type", "Entry", "Account", "Amount", "Category", "Description", "Balance"}
	if err := f.SetSheetRow(ledgerSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, e := range entries {
		row := []interface{}{
			e.Timestamp.UTC().Format(time.RFC3339),
			string(e.Type),
			string(e.EntryType),
			e.Account,
			cents(e.AmountCents),
			e.Category,
			e.Description,
			cents(e.Balance),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

// cents renders an integer cent amount as a decimal string.
func cents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
