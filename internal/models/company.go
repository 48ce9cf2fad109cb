package models

import "time"

// DefaultCompanyName is used when the settings row is first created.
const DefaultCompanyName = "Your Company Name"

// CompanySettings is the singleton issuer profile printed on documents.
type CompanySettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyName    string `gorm:"size:200;not null" json:"company_name"`
	CompanyEmail   string `gorm:"size:100" json:"company_email,omitempty"`
	CompanyPhone   string `gorm:"size:20" json:"company_phone,omitempty"`
	CompanyAddress string `gorm:"type:text" json:"company_address,omitempty"`
	CompanyCity    string `gorm:"size:100" json:"company_city,omitempty"`
	CompanyState   string `gorm:"size:50" json:"company_state,omitempty"`
	CompanyZip     string `gorm:"size:20" json:"company_zip,omitempty"`
	CompanyCountry string `gorm:"size:100" json:"company_country,omitempty"`
	CompanyTaxID   string `gorm:"size:50" json:"company_tax_id,omitempty"`
	CompanyWebsite string `gorm:"size:200" json:"company_website,omitempty"`

	BankName          string `gorm:"size:200" json:"bank_name,omitempty"`
	BankAccountNumber string `gorm:"size:100" json:"bank_account_number,omitempty"`
	BankRoutingNumber string `gorm:"size:100" json:"bank_routing_number,omitempty"`
	BankSwiftCode     string `gorm:"size:50" json:"bank_swift_code,omitempty"`

	PaymentInstructions string `gorm:"type:text" json:"payment_instructions,omitempty"`
	PaymentMethods      string `gorm:"size:500" json:"payment_methods,omitempty"`

	LogoFilename string `gorm:"size:255" json:"logo_filename,omitempty"`
	LogoPath     string `gorm:"size:500" json:"logo_path,omitempty"`
}

// HasBankDetails reports whether any bank field is set.
func (c *CompanySettings) HasBankDetails() bool {
	return c.BankName != "" || c.BankAccountNumber != "" || c.BankRoutingNumber != "" || c.BankSwiftCode != ""
}

// AddressLines returns the non-empty postal address lines.
func (c *CompanySettings) AddressLines() []string {
	cl := Client{Address: c.CompanyAddress, City: c.CompanyCity, State: c.CompanyState, ZipCode: c.CompanyZip, Country: c.CompanyCountry}
	return cl.AddressLines()
}
