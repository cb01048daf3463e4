package remote

import (
	"encoding/json"
	"fmt"
)

// ContactRecord is one contact as the remote service returns it
type ContactRecord struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organizationId"`
	Version        int             `json:"version"`
	Roles          ContactRoles    `json:"roles"`
	Company        *ContactCompany `json:"company"`
	Archived       bool            `json:"archived"`
}

// ContactRoles holds the role blocks of a remote contact
type ContactRoles struct {
	Customer *CustomerRole `json:"customer"`
}

// CustomerRole carries the customer number assigned by the remote service
type CustomerRole struct {
	Number json.Number `json:"number"`
}

// ContactCompany is the company block of a remote contact
type ContactCompany struct {
	Name                 string `json:"name"`
	AllowTaxFreeInvoices bool   `json:"allowTaxFreeInvoices"`
}

// CompanyName returns the company name, or empty when the block is absent
func (r *ContactRecord) CompanyName() string {
	if r.Company == nil {
		return ""
	}
	return r.Company.Name
}

// CustomerNumber returns the customer number as a string, or nil when the
// contact has no customer role.
func (r *ContactRecord) CustomerNumber() *string {
	if r.Roles.Customer == nil || r.Roles.Customer.Number == "" {
		return nil
	}
	number := r.Roles.Customer.Number.String()
	return &number
}

// AllowTaxFreeInvoices reports the tax-free flag of the company block
func (r *ContactRecord) AllowTaxFreeInvoices() bool {
	return r.Company != nil && r.Company.AllowTaxFreeInvoices
}

// ContactPage is one page of the remote contact listing
type ContactPage struct {
	Content       []ContactRecord `json:"content"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int             `json:"totalElements"`
	Number        int             `json:"number"`
	Last          bool            `json:"last"`
}

// ParseContactPage decodes a contact listing body
func ParseContactPage(body []byte) (*ContactPage, error) {
	var page ContactPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding contact page: %w", err)
	}
	return &page, nil
}
