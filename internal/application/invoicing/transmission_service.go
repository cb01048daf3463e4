package invoicing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/invoicing"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/infrastructure/remote"
)

// InvoiceGateway is the outbound port for submitting invoices to the
// remote accounting service.
type InvoiceGateway interface {
	CreateInvoice(ctx context.Context, payload any) *remote.Response
}

// TransmissionService orchestrates the transmission of an invoice to the
// remote accounting service and applies the outcome to the invoice.
type TransmissionService struct {
	invoiceRepo invoicing.InvoiceRepository
	contactRepo contact.ContactRepository
	gateway     InvoiceGateway
	builder     *invoicing.PayloadBuilder
	dates       invoicing.DateConverter
	logger      *zap.Logger
}

// NewTransmissionService creates a new TransmissionService
func NewTransmissionService(
	invoiceRepo invoicing.InvoiceRepository,
	contactRepo contact.ContactRepository,
	gateway InvoiceGateway,
	logger *zap.Logger,
) *TransmissionService {
	dates := invoicing.NewISODateConverter()
	return &TransmissionService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		gateway:     gateway,
		builder:     invoicing.NewPayloadBuilder(dates),
		dates:       dates,
		logger:      logger.Named("transmission"),
	}
}

// Transmit sends one invoice to the remote service.
//
// Build failures (contact not synced) surface as errors and leave the
// invoice untouched: nothing was attempted on the wire. Once the payload
// goes out, the outcome is recorded on the invoice instead, so a failed
// attempt returns the invoice in transmission_error state with a nil error.
func (s *TransmissionService) Transmit(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.IsTransmitted() {
		return nil, shared.NewDomainError("ALREADY_TRANSMITTED", "Invoice has already been transmitted")
	}

	cnt, err := s.contactRepo.FindByID(ctx, inv.ContactID)
	if err != nil {
		return nil, err
	}

	remoteContactID := ""
	if cnt.RemoteContactID != nil {
		remoteContactID = *cnt.RemoteContactID
	}

	payload, err := s.builder.Build(inv, remoteContactID)
	if err != nil {
		return nil, err
	}

	resp := s.gateway.CreateInvoice(ctx, payload)
	if resp.IsSuccess() {
		if err := s.applySuccess(inv, resp); err != nil {
			return nil, err
		}
	} else {
		s.applyError(inv, resp)
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

func (s *TransmissionService) applySuccess(inv *invoicing.Invoice, resp *remote.Response) error {
	doc, err := invoicing.ParseRemoteDocument(resp.Body)
	if err != nil {
		// A 2xx with an undecodable body still counts as a failed attempt
		message := "remote accepted the invoice but returned an unreadable document"
		inv.RecordTransmissionError(message, resp.ErrorCode())
		s.logger.Error("unreadable success body",
			zap.String("invoice_id", inv.ID.String()),
			zap.Int("status", resp.StatusCode),
		)
		return nil
	}

	inv.MarkTransmitted(doc, s.dates)
	s.logger.Info("invoice transmitted",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("remote_id", doc.ID),
	)
	return nil
}

func (s *TransmissionService) applyError(inv *invoicing.Invoice, resp *remote.Response) {
	message := resp.ErrorMessage()
	code := resp.ErrorCode()

	inv.RecordTransmissionError(message, code)
	s.logger.Warn("invoice transmission failed",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("error", message),
		zap.Int("attempts", inv.TransmissionAttempts),
	)
}
