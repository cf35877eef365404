package domain

// Country is a reference-data record. Countries are broadly read, rarely
// written, and cached as a whole collection.
type Country struct {
	Audited
	Name      string `json:"name"`
	IsoCode   string `json:"iso_code"`
	PhoneCode string `json:"phone_code"`
	Flag      string `json:"flag"`
}

// EntityName returns the audit entity name for countries.
func (c *Country) EntityName() string {
	return "Country"
}

// Validate checks the required fields of a country.
func (c *Country) Validate() error {
	if c.Name == "" {
		return ErrEmptyCountryName
	}

	if c.IsoCode == "" {
		return ErrEmptyIsoCode
	}

	return nil
}
