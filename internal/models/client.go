package models

import "time"

// Client is a customer that invoices and quotations are addressed to.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:100;not null;index" json:"name"`
	Email   string `gorm:"size:100;index" json:"email,omitempty"`
	Phone   string `gorm:"size:20" json:"phone,omitempty"`
	Address string `gorm:"size:255" json:"address,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:50" json:"state,omitempty"`
	ZipCode string `gorm:"size:20" json:"zip_code,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
	TaxID   string `gorm:"size:50" json:"tax_id,omitempty"`

	Invoices   []Invoice   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
	Quotations []Quotation `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"quotations,omitempty"`
}

// CityLine renders "city, state zip" skipping blanks.
func (c *Client) CityLine() string {
	line := c.City
	if c.State != "" {
		if line != "" {
			line += ", "
		}
		line += c.State
	}
	if c.ZipCode != "" {
		if line != "" {
			line += " "
		}
		line += c.ZipCode
	}
	return line
}

// AddressLines returns the non-empty postal address lines.
func (c *Client) AddressLines() []string {
	var lines []string
	for _, l := range []string{c.Address, c.CityLine(), c.Country} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
