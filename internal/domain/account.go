package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a customer account holding a balance.
type Account struct {
	Audited
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
}

// EntityName returns the audit entity name for accounts.
func (a *Account) EntityName() string {
	return "Account"
}

// ValidateWithdrawal checks that the balance covers amount plus fee.
func (a *Account) ValidateWithdrawal(total decimal.Decimal) error {
	if a.Balance.LessThan(total) {
		return ErrInsufficientBalance
	}
	return nil
}

// Deposit increases the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Withdraw decreases the balance by amount.
func (a *Account) Withdraw(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}
