package invoicing

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexsync/backend/internal/domain/shared/valueobject"
)

func createTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(InvoiceInput{
		ContactID:   uuid.New(),
		VoucherDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Title:       "Invoice 2026-001",
		LineItems: []LineItemInput{
			{
				Type:              LineItemTypeCustom,
				Name:              "Consulting",
				Quantity:          decPtr("3"),
				NetAmount:         decPtr("10"),
				TaxRatePercentage: decPtr("19"),
			},
		},
	})
	require.NoError(t, err)
	return inv
}

func testRemoteDocument() RemoteDocument {
	return RemoteDocument{
		ID:          "e9066f04-8cc7-4616-93f8-ac24ecc42a46",
		ResourceURI: "https://remote.example/v1/invoices/e9066f04-8cc7-4616-93f8-ac24ecc42a46",
		Version:     1,
		CreatedDate: "2026-02-20T09:15:00.000+01:00",
		UpdatedDate: "2026-02-20T09:15:00.000+01:00",
	}
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft with derived totals", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.NotEqual(t, uuid.Nil, inv.ID)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Equal(t, valueobject.EUR, inv.Currency)
		assert.Equal(t, TaxTypeNet, inv.TaxType)
		assert.Len(t, inv.LineItems, 1)
		assert.Equal(t, 1, inv.LineItems[0].LineOrder)
		assert.True(t, dec("30.00").Equal(inv.TotalNetAmount), "net = %s", inv.TotalNetAmount)
		assert.True(t, dec("35.70").Equal(inv.TotalGrossAmount), "gross = %s", inv.TotalGrossAmount)
		assert.Equal(t, 0, inv.TransmissionAttempts)
		assert.Nil(t, inv.RemoteID)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventInvoiceCreated, events[0].EventType())
	})

	t.Run("rejects empty contact", func(t *testing.T) {
		_, err := NewInvoice(InvoiceInput{
			VoucherDate: time.Now(),
		})
		assert.Error(t, err)
	})

	t.Run("rejects zero voucher date", func(t *testing.T) {
		_, err := NewInvoice(InvoiceInput{
			ContactID: uuid.New(),
		})
		assert.Error(t, err)
	})

	t.Run("rejects unknown tax type", func(t *testing.T) {
		_, err := NewInvoice(InvoiceInput{
			ContactID:   uuid.New(),
			VoucherDate: time.Now(),
			TaxType:     TaxType("reverse_charge"),
		})
		assert.Error(t, err)
	})

	t.Run("allows invoice without line items", func(t *testing.T) {
		inv, err := NewInvoice(InvoiceInput{
			ContactID:   uuid.New(),
			VoucherDate: time.Now(),
		})
		require.NoError(t, err)
		assert.True(t, inv.TotalNetAmount.IsZero())
		assert.True(t, inv.TotalGrossAmount.IsZero())
	})
}

func TestInvoiceReplaceLineItems(t *testing.T) {
	t.Run("replaces items and rederives totals", func(t *testing.T) {
		inv := createTestInvoice(t)
		err := inv.ReplaceLineItems([]LineItemInput{
			{
				Type:      LineItemTypeService,
				Name:      "Support",
				Quantity:  decPtr("2"),
				NetAmount: decPtr("50"),
			},
			{Type: LineItemTypeText, Name: "Thank you"},
		})
		require.NoError(t, err)
		assert.Len(t, inv.LineItems, 2)
		assert.Equal(t, 1, inv.LineItems[0].LineOrder)
		assert.Equal(t, 2, inv.LineItems[1].LineOrder)
		assert.True(t, dec("100.00").Equal(inv.TotalNetAmount))
		assert.True(t, dec("100.00").Equal(inv.TotalGrossAmount))
	})

	t.Run("clearing items zeroes the totals", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.ReplaceLineItems(nil))
		assert.True(t, inv.TotalNetAmount.IsZero())
		assert.True(t, inv.TotalGrossAmount.IsZero())
	})

	t.Run("rejected once transmitted", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.MarkTransmitted(testRemoteDocument(), NewISODateConverter())
		err := inv.ReplaceLineItems(nil)
		assert.Error(t, err)
	})
}

func TestInvoiceMarkTransmitted(t *testing.T) {
	dates := NewISODateConverter()

	t.Run("sets linkage and clears errors", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.RecordTransmissionError("upstream unavailable", nil)
		require.Equal(t, 1, inv.TransmissionAttempts)

		doc := testRemoteDocument()
		inv.MarkTransmitted(doc, dates)

		assert.Equal(t, InvoiceStatusTransmitted, inv.Status)
		require.NotNil(t, inv.RemoteID)
		assert.Equal(t, doc.ID, *inv.RemoteID)
		require.NotNil(t, inv.RemoteResourceURI)
		assert.Equal(t, doc.ResourceURI, *inv.RemoteResourceURI)
		require.NotNil(t, inv.RemoteVersion)
		assert.Equal(t, 1, *inv.RemoteVersion)
		require.NotNil(t, inv.RemoteCreatedAt)
		require.NotNil(t, inv.RemoteUpdatedAt)
		assert.NotNil(t, inv.TransmittedAt)
		assert.Nil(t, inv.LastErrorMessage)
		assert.Nil(t, inv.LastErrorCode)
		assert.True(t, inv.IsTransmitted())
	})

	t.Run("does not touch the attempt count", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.RecordTransmissionError("first", nil)
		inv.RecordTransmissionError("second", nil)
		require.Equal(t, 2, inv.TransmissionAttempts)

		inv.MarkTransmitted(testRemoteDocument(), dates)
		assert.Equal(t, 2, inv.TransmissionAttempts)
	})

	t.Run("drops unparsable remote timestamps per field", func(t *testing.T) {
		inv := createTestInvoice(t)
		doc := testRemoteDocument()
		doc.CreatedDate = "not-a-date"
		inv.MarkTransmitted(doc, dates)

		assert.Equal(t, InvoiceStatusTransmitted, inv.Status)
		assert.Nil(t, inv.RemoteCreatedAt)
		assert.NotNil(t, inv.RemoteUpdatedAt)
	})

	t.Run("emits transmitted event", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.ClearDomainEvents()
		inv.MarkTransmitted(testRemoteDocument(), dates)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventInvoiceTransmitted, events[0].EventType())
	})
}

func TestInvoiceRecordTransmissionError(t *testing.T) {
	t.Run("each call counts one attempt", func(t *testing.T) {
		inv := createTestInvoice(t)
		for i := 1; i <= 3; i++ {
			inv.RecordTransmissionError(fmt.Sprintf("attempt %d failed", i), nil)
			assert.Equal(t, i, inv.TransmissionAttempts)
		}
		assert.Equal(t, InvoiceStatusTransmissionError, inv.Status)
		require.NotNil(t, inv.LastErrorMessage)
		assert.Equal(t, "attempt 3 failed", *inv.LastErrorMessage)
		assert.NotNil(t, inv.LastTransmissionAttemptAt)
		assert.True(t, inv.HasTransmissionError())
	})

	t.Run("keeps the status code when present", func(t *testing.T) {
		inv := createTestInvoice(t)
		code := "422"
		inv.RecordTransmissionError("validation failed", &code)
		require.NotNil(t, inv.LastErrorCode)
		assert.Equal(t, "422", *inv.LastErrorCode)
	})

	t.Run("error state is re-enterable", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.RecordTransmissionError("first", nil)
		inv.RecordTransmissionError("second", nil)
		assert.Equal(t, InvoiceStatusTransmissionError, inv.Status)
		assert.Equal(t, 2, inv.TransmissionAttempts)
		assert.Equal(t, "second", *inv.LastErrorMessage)
	})

	t.Run("emits failure event with attempt count", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.ClearDomainEvents()
		inv.RecordTransmissionError("boom", nil)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		failed, ok := events[0].(*InvoiceTransmissionFailedEvent)
		require.True(t, ok)
		assert.Equal(t, 1, failed.Attempts)
		assert.Equal(t, "boom", failed.ErrorMessage)
	})
}

func TestInvoicePricedItemCount(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.ReplaceLineItems([]LineItemInput{
		{Type: LineItemTypeText, Name: "Intro"},
		{Type: LineItemTypeCustom, Name: "Work", NetAmount: decPtr("10")},
		{Type: LineItemTypeText, Name: "Outro"},
	}))
	assert.Equal(t, 1, inv.PricedItemCount())
}
