package dto

import (
	"github.com/shopspring/decimal"

	"github.com/otsbank/bankcore/internal/usecase"
)

// CreateAccountRequest represents an account creation request.
type CreateAccountRequest struct {
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		AccountNumber: r.AccountNumber,
		Name:          r.Name,
		Currency:      r.Currency,
	}
}

// PostIncomingRequest represents an incoming transaction request.
type PostIncomingRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"reference_number"`
}

// ToUseCaseInput converts the request to use case input.
func (r *PostIncomingRequest) ToUseCaseInput(accountID string) usecase.PostIncomingInput {
	return usecase.PostIncomingInput{
		AccountID:       accountID,
		Amount:          r.Amount,
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
	}
}

// PostOutgoingRequest represents an outgoing transaction request.
type PostOutgoingRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"reference_number"`
}

// ToUseCaseInput converts the request to use case input.
func (r *PostOutgoingRequest) ToUseCaseInput(accountID string) usecase.PostOutgoingInput {
	return usecase.PostOutgoingInput{
		AccountID:       accountID,
		Amount:          r.Amount,
		FeeAmount:       r.FeeAmount,
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
	}
}

// CreateCountryRequest represents a country creation request.
type CreateCountryRequest struct {
	Name      string `json:"name"`
	IsoCode   string `json:"iso_code"`
	PhoneCode string `json:"phone_code"`
	Flag      string `json:"flag"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateCountryRequest) ToUseCaseInput() usecase.CreateCountryInput {
	return usecase.CreateCountryInput{
		Name:      r.Name,
		IsoCode:   r.IsoCode,
		PhoneCode: r.PhoneCode,
		Flag:      r.Flag,
	}
}

// UpdateCountryRequest represents a country update request.
type UpdateCountryRequest struct {
	Name      string `json:"name"`
	PhoneCode string `json:"phone_code"`
	Flag      string `json:"flag"`
}

// ToUseCaseInput converts the request to use case input.
func (r *UpdateCountryRequest) ToUseCaseInput(id string) usecase.UpdateCountryInput {
	return usecase.UpdateCountryInput{
		ID:        id,
		Name:      r.Name,
		PhoneCode: r.PhoneCode,
		Flag:      r.Flag,
	}
}
