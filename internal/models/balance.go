package models

import (
	"github.com/shopspring/decimal"
)

// BalanceItem is one row of the merged profit/loss feed. It is derived on
// every query from transactions, paid installments and expenses; it is never
// persisted.
type BalanceItem struct {
	Type        string          `json:"type"`
	Source      string          `json:"source"`
	SourceID    uint            `json:"source_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`

	// Set only for credit-installment revenue rows.
	ClientName        string `json:"client_name,omitempty"`
	InstallmentNumber int    `json:"installment_number,omitempty"`
	TotalInstallments int    `json:"total_installments,omitempty"`
}

// Balance item type constants
const (
	BalanceItemRevenue = "revenue"
	BalanceItemExpense = "expense"
)

// Balance item source constants
const (
	BalanceSourceTransaction = "transaction"
	BalanceSourceInstallment = "installment"
	BalanceSourceExpense     = "expense"
)

// BalanceReport is the combined ledger view: the sorted item feed plus its
// totals. Totals are reduced over the filtered item set before sorting, so
// input order never affects them.
type BalanceReport struct {
	Items         []BalanceItem   `json:"items"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// RefreshReport summarizes one run of the installment status scan.
type RefreshReport struct {
	InstallmentsMarkedOverdue int `json:"installments_marked_overdue"`
	SalesMarkedOverdue        int `json:"sales_marked_overdue"`
	SalesChecked              int `json:"sales_checked"`
}
