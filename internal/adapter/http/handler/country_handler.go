package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otsbank/bankcore/internal/adapter/http/dto"
	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
)

// CountryService defines the behavior needed by CountryHandler.
type CountryService interface {
	CreateCountry(ctx context.Context, input usecase.CreateCountryInput) (*domain.Country, error)
	UpdateCountry(ctx context.Context, input usecase.UpdateCountryInput) (*domain.Country, error)
	DeleteCountry(ctx context.Context, id string) error
	GetCountry(ctx context.Context, id string) (*domain.Country, error)
	ListCountries(ctx context.Context, tier usecase.CacheTier) ([]*domain.Country, error)
}

// CountryHandler handles country reference-data HTTP requests.
type CountryHandler struct {
	countryUC CountryService
}

// NewCountryHandler creates a new CountryHandler.
func NewCountryHandler(countryUC CountryService) *CountryHandler {
	return &CountryHandler{countryUC: countryUC}
}

// List returns the country collection from the requested cache tier. The
// tier is required; unrecognized values are rejected.
func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	tier, err := usecase.ParseCacheTier(r.URL.Query().Get("cache"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cache type", err.Error())
		return
	}

	countries, err := h.countryUC.ListCountries(r.Context(), tier)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list countries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CountriesFromDomain(countries))
}

// Get retrieves a country by ID.
func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing country ID", "")
		return
	}

	country, err := h.countryUC.GetCountry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get country", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CountryFromDomain(country))
}

// Create creates a new country.
func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	country, err := h.countryUC.CreateCountry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create country", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CountryFromDomain(country))
}

// Update updates a country in place.
func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing country ID", "")
		return
	}

	var req dto.UpdateCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	country, err := h.countryUC.UpdateCountry(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update country", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CountryFromDomain(country))
}

// Delete soft-deletes a country.
func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing country ID", "")
		return
	}

	if err := h.countryUC.DeleteCountry(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete country", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
