package models

import (
	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/shared"
)

// ContactModel is the persistence model for the Contact aggregate root.
type ContactModel struct {
	AggregateModel
	CompanyName          string  `gorm:"type:varchar(255);not null"`
	RemoteContactID      *string `gorm:"type:varchar(100);uniqueIndex"`
	OrganizationID       string  `gorm:"type:varchar(100)"`
	RemoteVersion        int     `gorm:"not null;default:0"`
	CustomerNumber       *string `gorm:"type:varchar(50)"`
	AllowTaxFreeInvoices bool    `gorm:"not null;default:false"`
	Archived             bool    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *contact.Contact {
	return &contact.Contact{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CompanyName:          m.CompanyName,
		RemoteContactID:      m.RemoteContactID,
		OrganizationID:       m.OrganizationID,
		RemoteVersion:        m.RemoteVersion,
		CustomerNumber:       m.CustomerNumber,
		AllowTaxFreeInvoices: m.AllowTaxFreeInvoices,
		Archived:             m.Archived,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *contact.Contact) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CompanyName = c.CompanyName
	m.RemoteContactID = c.RemoteContactID
	m.OrganizationID = c.OrganizationID
	m.RemoteVersion = c.RemoteVersion
	m.CustomerNumber = c.CustomerNumber
	m.AllowTaxFreeInvoices = c.AllowTaxFreeInvoices
	m.Archived = c.Archived
}

// ContactModelFromDomain creates a new persistence model from a domain Contact entity.
func ContactModelFromDomain(c *contact.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomain(c)
	return m
}
