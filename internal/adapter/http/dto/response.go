package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/otsbank/bankcore/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		Currency:      a.Currency,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}

	return result
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID              string           `json:"id"`
	AccountID       string           `json:"account_id"`
	DebitAmount     *decimal.Decimal `json:"debit_amount,omitempty"`
	CreditAmount    *decimal.Decimal `json:"credit_amount,omitempty"`
	Description     string           `json:"description"`
	ReferenceNumber string           `json:"reference_number"`
	TransferType    string           `json:"transfer_type,omitempty"`
	TransactionDate time.Time        `json:"transaction_date"`
}

// TransactionFromDomain converts a domain ledger entry to response.
func TransactionFromDomain(t *domain.AccountTransaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Description:     t.Description,
		ReferenceNumber: t.ReferenceNumber,
		TransferType:    t.TransferType,
		TransactionDate: t.TransactionDate,
	}

	if t.DebitAmount.Valid {
		resp.DebitAmount = &t.DebitAmount.Decimal
	}

	if t.CreditAmount.Valid {
		resp.CreditAmount = &t.CreditAmount.Decimal
	}

	return resp
}

// TransactionsFromDomain converts domain ledger entries to responses.
func TransactionsFromDomain(txns []*domain.AccountTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}

	return result
}

// ListTransactionsResponse wraps a ledger entry listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// CountryResponse represents a country in API responses.
type CountryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsoCode   string `json:"iso_code"`
	PhoneCode string `json:"phone_code"`
	Flag      string `json:"flag"`
	IsActive  bool   `json:"is_active"`
}

// CountryFromDomain converts a domain country to response.
func CountryFromDomain(c *domain.Country) *CountryResponse {
	return &CountryResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsoCode:   c.IsoCode,
		PhoneCode: c.PhoneCode,
		Flag:      c.Flag,
		IsActive:  c.IsActive,
	}
}

// CountriesFromDomain converts domain countries to responses.
func CountriesFromDomain(countries []*domain.Country) []*CountryResponse {
	result := make([]*CountryResponse, len(countries))
	for i, c := range countries {
		result[i] = CountryFromDomain(c)
	}

	return result
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID             string         `json:"id"`
	EntityName     string         `json:"entity_name"`
	EntityID       string         `json:"entity_id"`
	Action         string         `json:"action"`
	UserName       string         `json:"user_name"`
	ChangedValues  map[string]any `json:"changed_values,omitempty"`
	OriginalValues map[string]any `json:"original_values,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:             l.ID,
			EntityName:     l.EntityName,
			EntityID:       l.EntityID,
			Action:         string(l.Action),
			UserName:       l.UserName,
			ChangedValues:  l.ChangedValues,
			OriginalValues: l.OriginalValues,
			CreatedAt:      l.CreatedAt,
		}
	}

	return result
}
