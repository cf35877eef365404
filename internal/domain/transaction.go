package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferTypeFee tags ledger entries created for transaction fees.
const TransferTypeFee = "Fee"

// AccountTransaction is a single ledger entry against an account. Exactly one
// of the debit or credit legs is populated. Entries are immutable once created.
type AccountTransaction struct {
	Audited
	AccountID       string              `json:"account_id"`
	DebitAmount     decimal.NullDecimal `json:"debit_amount"`
	CreditAmount    decimal.NullDecimal `json:"credit_amount"`
	Description     string              `json:"description"`
	ReferenceNumber string              `json:"reference_number"`
	TransferType    string              `json:"transfer_type"`
	TransactionDate time.Time           `json:"transaction_date"`
}

// EntityName returns the audit entity name for ledger entries.
func (t *AccountTransaction) EntityName() string {
	return "AccountTransaction"
}

// NewDebitTransaction builds an incoming ledger entry with the debit leg set.
func NewDebitTransaction(id, accountID string, amount decimal.Decimal, description, refNumber string, at time.Time) *AccountTransaction {
	return &AccountTransaction{
		Audited:         Audited{ID: id},
		AccountID:       accountID,
		DebitAmount:     decimal.NewNullDecimal(amount),
		Description:     description,
		ReferenceNumber: refNumber,
		TransactionDate: at,
	}
}

// NewCreditTransaction builds an outgoing ledger entry with the credit leg set.
func NewCreditTransaction(id, accountID string, amount decimal.Decimal, description, refNumber string, at time.Time) *AccountTransaction {
	return &AccountTransaction{
		Audited:         Audited{ID: id},
		AccountID:       accountID,
		CreditAmount:    decimal.NewNullDecimal(amount),
		Description:     description,
		ReferenceNumber: refNumber,
		TransactionDate: at,
	}
}
