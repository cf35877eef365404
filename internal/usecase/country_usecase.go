package usecase

import (
	"context"

	"github.com/otsbank/bankcore/internal/domain"
)

// CountryUseCase handles country reference-data commands. Every mutation runs
// through the unit of work and then refreshes both cache tiers before the
// caller observes success.
type CountryUseCase struct {
	uowFactory  *UnitOfWorkFactory
	countryRepo CountryRepository
	cache       *CountryCache
	idGen       IDGenerator
}

// NewCountryUseCase creates a new CountryUseCase.
func NewCountryUseCase(uowFactory *UnitOfWorkFactory, countryRepo CountryRepository, cache *CountryCache, idGen IDGenerator) *CountryUseCase {
	return &CountryUseCase{
		uowFactory:  uowFactory,
		countryRepo: countryRepo,
		cache:       cache,
		idGen:       idGen,
	}
}

// CreateCountryInput represents input for creating a country.
type CreateCountryInput struct {
	Name      string
	IsoCode   string
	PhoneCode string
	Flag      string
}

// CreateCountry creates a new country record.
func (uc *CountryUseCase) CreateCountry(ctx context.Context, input CreateCountryInput) (*domain.Country, error) {
	country := &domain.Country{
		Audited:   domain.Audited{ID: uc.idGen.Generate()},
		Name:      input.Name,
		IsoCode:   input.IsoCode,
		PhoneCode: input.PhoneCode,
		Flag:      input.Flag,
	}

	if err := country.Validate(); err != nil {
		return nil, err
	}

	insert, err := domain.NewInsert(country)
	if err != nil {
		return nil, err
	}

	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	uow.Stage(insert)

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	uc.cache.Refresh(ctx)

	return country, nil
}

// UpdateCountryInput represents input for updating a country in place.
type UpdateCountryInput struct {
	ID        string
	Name      string
	PhoneCode string
	Flag      string
}

// UpdateCountry updates the descriptive fields of an active country.
func (uc *CountryUseCase) UpdateCountry(ctx context.Context, input UpdateCountryInput) (*domain.Country, error) {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	country, err := uc.lockActiveCountry(ctx, uow, input.ID)
	if err != nil {
		return nil, err
	}

	original, err := domain.Snapshot(country)
	if err != nil {
		return nil, err
	}

	country.Name = input.Name
	if input.PhoneCode != "" {
		country.PhoneCode = input.PhoneCode
	}
	if input.Flag != "" {
		country.Flag = input.Flag
	}

	if err := country.Validate(); err != nil {
		return nil, err
	}

	update, err := domain.NewUpdate(country, original)
	if err != nil {
		return nil, err
	}

	uow.Stage(update)

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	uc.cache.Refresh(ctx)

	return country, nil
}

// DeleteCountry soft-deletes a country by deactivating it. The record is
// never physically removed.
func (uc *CountryUseCase) DeleteCountry(ctx context.Context, id string) error {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	country, err := uc.lockActiveCountry(ctx, uow, id)
	if err != nil {
		return err
	}

	original, err := domain.Snapshot(country)
	if err != nil {
		return err
	}

	uow.Stage(domain.NewDeactivate(country, original))

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	uc.cache.Refresh(ctx)

	return nil
}

// GetCountry retrieves a country by ID.
func (uc *CountryUseCase) GetCountry(ctx context.Context, id string) (*domain.Country, error) {
	return uc.countryRepo.GetByID(ctx, id)
}

// ListCountries returns the active country collection from the requested
// cache tier.
func (uc *CountryUseCase) ListCountries(ctx context.Context, tier CacheTier) ([]*domain.Country, error) {
	return uc.cache.Read(ctx, tier)
}

func (uc *CountryUseCase) lockActiveCountry(ctx context.Context, uow *UnitOfWork, id string) (*domain.Country, error) {
	country, err := uc.countryRepo.GetByIDForUpdate(ctx, uow.Tx(), id)
	if err != nil {
		return nil, err
	}

	if !country.IsActive {
		return nil, domain.ErrCountryNotActive
	}

	return country, nil
}
