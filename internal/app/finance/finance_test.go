package finance_test

import (
	"errors"
	"testing"

	"github.com/studyflow-app/studyflow/internal/app/finance"
	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/infra/sqlite"
)

func testService(t *testing.T) (*finance.Service, *sqlite.DB) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return finance.NewService(db), db
}

func TestIncomeAndExpense(t *testing.T) {
	svc, _ := testService(t)

	account, err := svc.CreateAccount("u1", "Wallet", domain.AccountChecking)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if err := svc.Income("u1", account.ID, 10000, "salary", "monthly pay"); err != nil {
		t.Fatalf("income: %v", err)
	}
	if err := svc.Expense("u1", account.ID, 2500, "food", "groceries"); err != nil {
		t.Fatalf("expense: %v", err)
	}

	accounts, err := svc.Accounts("u1")
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if accounts[0].BalanceCents != 7500 {
		t.Errorf("balance = %d, want 7500", accounts[0].BalanceCents)
	}
}

func TestExpense_InsufficientFunds(t *testing.T) {
	svc, _ := testService(t)

	account, _ := svc.CreateAccount("u1", "Wallet", domain.AccountChecking)
	_ = svc.Income("u1", account.ID, 1000, "", "")

	err := svc.Expense("u1", account.ID, 5000, "food", "")
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("error = %v, want ErrInsufficientFunds", err)
	}

	accounts, _ := svc.Accounts("u1")
	if accounts[0].BalanceCents != 1000 {
		t.Errorf("balance changed on rejected expense: %d", accounts[0].BalanceCents)
	}
}

func TestTransfer(t *testing.T) {
	svc, _ := testService(t)

	wallet, _ := svc.CreateAccount("u1", "Wallet", domain.AccountChecking)
	savings, _ := svc.CreateAccount("u1", "Savings", domain.AccountSavings)
	_ = svc.Income("u1", wallet.ID, 10000, "", "")

	if err := svc.Transfer("u1", wallet.ID, savings.ID, 4000, "stash"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	accounts, _ := svc.Accounts("u1")
	balances := map[string]int64{}
	for _, a := range accounts {
		balances[a.Name] = a.BalanceCents
	}
	if balances["Wallet"] != 6000 {
		t.Errorf("Wallet = %d, want 6000", balances["Wallet"])
	}
	if balances["Savings"] != 4000 {
		t.Errorf("Savings = %d, want 4000", balances["Savings"])
	}
}

func TestTransfer_Rejections(t *testing.T) {
	svc, _ := testService(t)

	wallet, _ := svc.CreateAccount("u1", "Wallet", domain.AccountChecking)
	savings, _ := svc.CreateAccount("u1", "Savings", domain.AccountSavings)

	if err := svc.Transfer("u1", wallet.ID, wallet.ID, 100, ""); !errors.Is(err, domain.ErrSameAccount) {
		t.Errorf("same-account error = %v, want ErrSameAccount", err)
	}
	if err := svc.Transfer("u1", wallet.ID, savings.ID, 0, ""); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("zero amount error = %v, want ErrInvalidAmount", err)
	}
	if err := svc.Transfer("u1", wallet.ID, savings.ID, 100, ""); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("empty account error = %v, want ErrInsufficientFunds", err)
	}
	if err := svc.Transfer("u1", "missing", savings.ID, 100, ""); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("missing account error = %v, want ErrAccountNotFound", err)
	}
}

func TestLedger_DebitsMatchCredits(t *testing.T) {
	svc, _ := testService(t)

	wallet, _ := svc.CreateAccount("u1", "Wallet", domain.AccountChecking)
	savings, _ := svc.CreateAccount("u1", "Savings", domain.AccountSavings)
	_ = svc.Income("u1", wallet.ID, 10000, "salary", "")
	_ = svc.Expense("u1", wallet.ID, 3000, "rent", "")
	_ = svc.Transfer("u1", wallet.ID, savings.ID, 2000, "")

	entries, err := svc.History("u1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6 (three matched pairs)", len(entries))
	}

	var debits, credits int64
	pairs := map[string][]domain.LedgerEntry{}
	for _, e := range entries {
		switch e.EntryType {
		case domain.EntryDebit:
			debits += e.AmountCents
		case domain.EntryCredit:
			credits += e.AmountCents
		}
		pairs[e.TxID] = append(pairs[e.TxID], e)
	}
	if debits != credits {
		t.Errorf("debits %d != credits %d", debits, credits)
	}
	for txID, pair := range pairs {
		if len(pair) != 2 {
			t.Errorf("tx %s has %d entries, want 2", txID, len(pair))
		}
	}
}
