package contact

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/infrastructure/remote"
)

// ContactGateway is the outbound port for fetching contacts from the
// remote accounting service.
type ContactGateway interface {
	ListContacts(ctx context.Context, page, size int) *remote.Response
}

// SyncResult summarizes one full contact sync run
type SyncResult struct {
	Pages   int `json:"pages"`
	Fetched int `json:"fetched"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// SyncService mirrors remote contacts into the local store.
// The remote side is the source of truth: existing contacts are overwritten
// with the fetched state, unknown ones are created.
type SyncService struct {
	contactRepo contact.ContactRepository
	gateway     ContactGateway
	pageSize    int
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	contactRepo contact.ContactRepository,
	gateway ContactGateway,
	pageSize int,
	logger *zap.Logger,
) *SyncService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &SyncService{
		contactRepo: contactRepo,
		gateway:     gateway,
		pageSize:    pageSize,
		logger:      logger.Named("contact-sync"),
	}
}

// SyncAll walks the remote contact listing page by page and upserts every
// record. A transport or HTTP failure aborts the run; pages already
// processed stay applied.
func (s *SyncService) SyncAll(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	for page := 0; ; page++ {
		resp := s.gateway.ListContacts(ctx, page, s.pageSize)
		if !resp.IsSuccess() {
			return result, fmt.Errorf("fetching contact page %d: %s", page, resp.ErrorMessage())
		}

		parsed, err := remote.ParseContactPage(resp.Body)
		if err != nil {
			return result, fmt.Errorf("contact page %d: %w", page, err)
		}

		result.Pages++
		for i := range parsed.Content {
			created, err := s.upsert(ctx, &parsed.Content[i])
			if err != nil {
				return result, err
			}
			result.Fetched++
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if parsed.Last || parsed.Number >= parsed.TotalPages-1 {
			break
		}
	}

	s.logger.Info("contact sync completed",
		zap.Int("pages", result.Pages),
		zap.Int("fetched", result.Fetched),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

// upsert applies one remote record; returns true when a contact was created
func (s *SyncService) upsert(ctx context.Context, record *remote.ContactRecord) (bool, error) {
	state := contact.RemoteState{
		RemoteContactID:      record.ID,
		OrganizationID:       record.OrganizationID,
		RemoteVersion:        record.Version,
		CompanyName:          record.CompanyName(),
		CustomerNumber:       record.CustomerNumber(),
		AllowTaxFreeInvoices: record.AllowTaxFreeInvoices(),
		Archived:             record.Archived,
	}

	existing, err := s.contactRepo.FindByRemoteContactID(ctx, record.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return false, err
		}
		fresh, err := contact.NewContactFromRemote(state)
		if err != nil {
			return false, err
		}
		return true, s.contactRepo.Save(ctx, fresh)
	}

	existing.ApplyRemoteState(state)
	return false, s.contactRepo.Save(ctx, existing)
}
