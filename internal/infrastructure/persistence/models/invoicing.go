package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lexsync/backend/internal/domain/invoicing"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The optional payment and shipping condition blocks are flattened into
// nullable columns and folded back on read.
type InvoiceModel struct {
	AggregateModel
	ContactID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	VoucherDate  time.Time               `gorm:"not null;index"`
	Currency     valueobject.Currency    `gorm:"type:varchar(3);not null;default:'EUR'"`
	Title        string                  `gorm:"type:varchar(255)"`
	Introduction string                  `gorm:"type:text"`
	Remark       string                  `gorm:"type:text"`
	Archived     bool                    `gorm:"not null;default:false"`
	TaxType      invoicing.TaxType       `gorm:"type:varchar(10);not null;default:'net'"`
	LineItems    []LineItemModel         `gorm:"foreignKey:InvoiceID;references:ID"`
	TotalNet     decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	TotalGross   decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	Status       invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`

	PaymentTermLabel          string           `gorm:"type:varchar(255)"`
	PaymentTermDuration       *int             ``
	PaymentDiscountPercentage *decimal.Decimal `gorm:"type:decimal(18,2)"`
	PaymentDiscountRange      *int             ``
	ShippingDate              *time.Time       ``
	ShippingType              string           `gorm:"type:varchar(50)"`

	RemoteID          *string    `gorm:"type:varchar(100);uniqueIndex"`
	RemoteResourceURI *string    `gorm:"type:varchar(500)"`
	RemoteVersion     *int       ``
	RemoteCreatedAt   *time.Time ``
	RemoteUpdatedAt   *time.Time ``

	LastErrorMessage          *string    `gorm:"type:text"`
	LastErrorCode             *string    `gorm:"type:varchar(50)"`
	TransmissionAttempts      int        `gorm:"not null;default:0"`
	LastTransmissionAttemptAt *time.Time ``
	TransmittedAt             *time.Time ``
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ContactID:          m.ContactID,
		VoucherDate:        m.VoucherDate,
		Currency:           m.Currency,
		Title:              m.Title,
		Introduction:       m.Introduction,
		Remark:             m.Remark,
		Archived:           m.Archived,
		TaxType:            m.TaxType,
		PaymentConditions:  m.paymentConditions(),
		ShippingConditions: m.shippingConditions(),
		TotalNetAmount:     m.TotalNet,
		TotalGrossAmount:   m.TotalGross,
		Status:             m.Status,

		RemoteID:          m.RemoteID,
		RemoteResourceURI: m.RemoteResourceURI,
		RemoteVersion:     m.RemoteVersion,
		RemoteCreatedAt:   m.RemoteCreatedAt,
		RemoteUpdatedAt:   m.RemoteUpdatedAt,

		LastErrorMessage:          m.LastErrorMessage,
		LastErrorCode:             m.LastErrorCode,
		TransmissionAttempts:      m.TransmissionAttempts,
		LastTransmissionAttemptAt: m.LastTransmissionAttemptAt,
		TransmittedAt:             m.TransmittedAt,

		LineItems: make([]invoicing.LineItem, len(m.LineItems)),
	}
	for i, item := range m.LineItems {
		inv.LineItems[i] = *item.ToDomain()
	}
	return inv
}

func (m *InvoiceModel) paymentConditions() *invoicing.PaymentConditions {
	pc := &invoicing.PaymentConditions{
		PaymentTermLabel:    m.PaymentTermLabel,
		PaymentTermDuration: m.PaymentTermDuration,
		DiscountPercentage:  m.PaymentDiscountPercentage,
		DiscountRange:       m.PaymentDiscountRange,
	}
	if pc.IsEmpty() {
		return nil
	}
	return pc
}

func (m *InvoiceModel) shippingConditions() *invoicing.ShippingConditions {
	sc := &invoicing.ShippingConditions{
		ShippingDate: m.ShippingDate,
		ShippingType: m.ShippingType,
	}
	if sc.IsEmpty() {
		return nil
	}
	return sc
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.ContactID = inv.ContactID
	m.VoucherDate = inv.VoucherDate
	m.Currency = inv.Currency
	m.Title = inv.Title
	m.Introduction = inv.Introduction
	m.Remark = inv.Remark
	m.Archived = inv.Archived
	m.TaxType = inv.TaxType
	m.TotalNet = inv.TotalNetAmount
	m.TotalGross = inv.TotalGrossAmount
	m.Status = inv.Status

	if pc := inv.PaymentConditions; pc != nil {
		m.PaymentTermLabel = pc.PaymentTermLabel
		m.PaymentTermDuration = pc.PaymentTermDuration
		m.PaymentDiscountPercentage = pc.DiscountPercentage
		m.PaymentDiscountRange = pc.DiscountRange
	} else {
		m.PaymentTermLabel = ""
		m.PaymentTermDuration = nil
		m.PaymentDiscountPercentage = nil
		m.PaymentDiscountRange = nil
	}
	if sc := inv.ShippingConditions; sc != nil {
		m.ShippingDate = sc.ShippingDate
		m.ShippingType = sc.ShippingType
	} else {
		m.ShippingDate = nil
		m.ShippingType = ""
	}

	m.RemoteID = inv.RemoteID
	m.RemoteResourceURI = inv.RemoteResourceURI
	m.RemoteVersion = inv.RemoteVersion
	m.RemoteCreatedAt = inv.RemoteCreatedAt
	m.RemoteUpdatedAt = inv.RemoteUpdatedAt

	m.LastErrorMessage = inv.LastErrorMessage
	m.LastErrorCode = inv.LastErrorCode
	m.TransmissionAttempts = inv.TransmissionAttempts
	m.LastTransmissionAttemptAt = inv.LastTransmissionAttemptAt
	m.TransmittedAt = inv.TransmittedAt

	m.LineItems = make([]LineItemModel, len(inv.LineItems))
	for i, item := range inv.LineItems {
		m.LineItems[i] = *LineItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// LineItemModel is the persistence model for the LineItem entity.
type LineItemModel struct {
	ID                 uuid.UUID              `gorm:"type:uuid;primary_key"`
	InvoiceID          uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_invoice_order,priority:1"`
	LineOrder          int                    `gorm:"not null;uniqueIndex:idx_line_item_invoice_order,priority:2"`
	Type               invoicing.LineItemType `gorm:"type:varchar(20);not null"`
	Name               string                 `gorm:"type:varchar(255);not null"`
	Description        string                 `gorm:"type:text"`
	Quantity           *decimal.Decimal       `gorm:"type:decimal(18,4)"`
	UnitName           string                 `gorm:"type:varchar(50)"`
	Currency           valueobject.Currency   `gorm:"type:varchar(3)"`
	NetAmount          *decimal.Decimal       `gorm:"type:decimal(18,4)"`
	TaxRatePercentage  *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	DiscountPercentage decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	LineTotalNet       *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	LineTotalGross     *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	CreatedAt          time.Time              `gorm:"not null"`
	UpdatedAt          time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "invoice_line_items"
}

// ToDomain converts the persistence model to a domain LineItem entity.
func (m *LineItemModel) ToDomain() *invoicing.LineItem {
	return &invoicing.LineItem{
		ID:                 m.ID,
		InvoiceID:          m.InvoiceID,
		LineOrder:          m.LineOrder,
		Type:               m.Type,
		Name:               m.Name,
		Description:        m.Description,
		Quantity:           m.Quantity,
		UnitName:           m.UnitName,
		Currency:           m.Currency,
		NetAmount:          m.NetAmount,
		TaxRatePercentage:  m.TaxRatePercentage,
		DiscountPercentage: m.DiscountPercentage,
		LineTotalNet:       m.LineTotalNet,
		LineTotalGross:     m.LineTotalGross,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// LineItemModelFromDomain creates a new persistence model from a domain LineItem entity.
func LineItemModelFromDomain(item *invoicing.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:                 item.ID,
		InvoiceID:          item.InvoiceID,
		LineOrder:          item.LineOrder,
		Type:               item.Type,
		Name:               item.Name,
		Description:        item.Description,
		Quantity:           item.Quantity,
		UnitName:           item.UnitName,
		Currency:           item.Currency,
		NetAmount:          item.NetAmount,
		TaxRatePercentage:  item.TaxRatePercentage,
		DiscountPercentage: item.DiscountPercentage,
		LineTotalNet:       item.LineTotalNet,
		LineTotalGross:     item.LineTotalGross,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}
