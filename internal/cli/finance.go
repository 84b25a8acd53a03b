package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
	"github.com/studyflow-app/studyflow/internal/domain"
)

func init() {
	accountsAddCmd.Flags().StringVar(&accountType, "type", "checking", "Account type: checking, savings, or cash")
	accountsCmd.AddCommand(accountsAddCmd)
	rootCmd.AddCommand(accountsCmd)

	txCmd.Flags().StringVar(&txCategory, "category", "", "Transaction category")
	txCmd.Flags().StringVar(&txNote, "note", "", "Transaction description")
	txCmd.Flags().StringVar(&txTo, "to", "", "Destination account (transfer only)")
	txListCmd.Flags().IntVar(&txLimit, "limit", 20, "Number of entries to show")
	txCmd.AddCommand(txListCmd)
	rootCmd.AddCommand(txCmd)
}

var (
	accountType string
	txCategory  string
	txNote      string
	txTo        string
	txLimit     int
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List money accounts",
	RunE:  runAccountsList,
}

var accountsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a money account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsAdd,
}

var txCmd = &cobra.Command{
	Use:   "tx <income|expense|transfer> <account> <amount>",
	Short: "Record a financial transaction",
	Long: `Record a financial transaction against an account. Amounts are decimal,
e.g. 12.50. Transfers need a --to account.

Examples:
  studyflow tx income Wallet 150.00 --category salary
  studyflow tx expense Wallet 12.50 --category food --note lunch
  studyflow tx transfer Wallet 50.00 --to Savings`,
	Args: cobra.ExactArgs(3),
	RunE: runTx,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent ledger entries",
	RunE:  runTxList,
}

func runAccountsList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	accounts, err := d.Finance.Accounts(userFlag)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts yet. Run 'studyflow accounts add <name>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(a.ID), a.Name, a.Type, cents(a.BalanceCents))
	}
	return w.Flush()
}

func runAccountsAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	account, err := d.Finance.CreateAccount(userFlag, args[0], domain.AccountType(accountType))
	if err != nil {
		return err
	}
	fmt.Printf("Account created: %s (%s)\n", account.Name, shortID(account.ID))
	return nil
}

func runTx(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	accountID, err := resolveAccountID(d, userFlag, args[1])
	if err != nil {
		return err
	}

	switch domain.TxType(args[0]) {
	case domain.TxIncome:
		err = d.Finance.Income(userFlag, accountID, amount, txCategory, txNote)
	case domain.TxExpense:
		err = d.Finance.Expense(userFlag, accountID, amount, txCategory, txNote)
	case domain.TxTransfer:
		if txTo == "" {
			return fmt.Errorf("transfer needs a --to account")
		}
		var toID string
		toID, err = resolveAccountID(d, userFlag, txTo)
		if err != nil {
			return err
		}
		err = d.Finance.Transfer(userFlag, accountID, toID, amount, txNote)
	default:
		return fmt.Errorf("transaction type must be income, expense, or transfer, got %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Println("Recorded.")
	return nil
}

func runTxList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Finance.History(userFlag, txLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No transactions yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTYPE\tENTRY\tACCOUNT\tAMOUNT\tBALANCE\tCATEGORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Type, e.EntryType, shortID(e.Account), cents(e.AmountCents), cents(e.Balance), e.Category)
	}
	return w.Flush()
}

// parseAmount converts "12.50" to cents.
func parseAmount(s string) (int64, error) {
	parts := strings.SplitN(s, ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || whole < 0 {
		return 0, fmt.Errorf("amount must be a positive decimal, got %q", s)
	}
	var frac int64
	if len(parts) == 2 {
		f := parts[1]
		if len(f) > 2 || len(f) == 0 {
			return 0, fmt.Errorf("amount must have at most two decimal places, got %q", s)
		}
		if len(f) == 1 {
			f += "0"
		}
		frac, err = strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("amount must be a positive decimal, got %q", s)
		}
	}
	return whole*100 + frac, nil
}
