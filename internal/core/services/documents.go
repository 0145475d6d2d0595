package services

import (
	"context"
	"sync"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// Ensure DocumentPipeline implements the interface.
var _ driving.DocumentService = (*DocumentPipeline)(nil)

// DefaultUploadCategory is the backend category assigned to CLI uploads.
const DefaultUploadCategory = "upload"

// DocumentConfig holds configuration for the document pipeline.
type DocumentConfig struct {
	// UserID identifies the uploading user.
	UserID int

	// Category is the backend document category for uploads.
	Category string
}

// DocumentPipeline owns the uploaded-document list and drives
// upload -> status tracking -> indexing -> delete against the backend.
//
// The list is a cache of server truth: every mutating action is followed by
// a wholesale re-fetch, never a local edit, so the displayed state cannot
// diverge from the server's.
type DocumentPipeline struct {
	mu      sync.Mutex
	gateway driven.Gateway
	cfg     DocumentConfig

	docs      []domain.UploadedDocument
	stats     domain.IndexStats
	uploading bool
}

// NewDocumentPipeline creates a document pipeline controller.
func NewDocumentPipeline(gateway driven.Gateway, cfg DocumentConfig) *DocumentPipeline {
	if cfg.Category == "" {
		cfg.Category = DefaultUploadCategory
	}
	return &DocumentPipeline{
		gateway: gateway,
		cfg:     cfg,
	}
}

// Refresh replaces the local document list wholesale from the backend.
func (p *DocumentPipeline) Refresh(ctx context.Context) error {
	if p.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	docs, err := p.gateway.ListDocuments(ctx)
	if err != nil {
		// Keep the previous list; a failed refresh must not blank the view.
		return err
	}

	p.mu.Lock()
	p.docs = docs
	p.mu.Unlock()
	return nil
}

// Upload sends a batch of files sequentially. Sequential issuance bounds
// backend load and keeps completion ordering trivial; one file's failure is
// recorded and the rest of the batch still runs. The document list and
// index statistics are refreshed exactly once per batch, after every file
// was attempted.
func (p *DocumentPipeline) Upload(ctx context.Context, files []domain.UploadFile) (domain.UploadReport, error) {
	// An empty selection is a no-op, not an error.
	if len(files) == 0 {
		return domain.UploadReport{}, nil
	}
	if p.gateway == nil {
		return domain.UploadReport{}, domain.ErrGatewayUnavailable
	}

	p.mu.Lock()
	if p.uploading {
		p.mu.Unlock()
		return domain.UploadReport{}, domain.ErrUploadInFlight
	}
	p.uploading = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.uploading = false
		p.mu.Unlock()
	}()

	report := domain.UploadReport{Attempted: len(files)}
	for _, file := range files {
		if err := p.gateway.UploadDocument(ctx, file, p.cfg.UserID, p.cfg.Category); err != nil {
			logger.Warn("documents: upload %q failed: %v", file.Name, err)
			report.Failures = append(report.Failures, domain.UploadFailure{Name: file.Name, Err: err})
			continue
		}
		logger.Info("documents: uploaded %q", file.Name)
		report.Uploaded++
	}

	// One refresh for the whole batch, regardless of individual outcomes.
	if err := p.Refresh(ctx); err != nil {
		logger.Warn("documents: post-upload refresh failed: %v", err)
	}
	p.refreshStats(ctx)

	return report, nil
}

// TriggerIndexing fires an index run and unconditionally refreshes
// statistics afterwards.
func (p *DocumentPipeline) TriggerIndexing(ctx context.Context, rebuild bool) error {
	if p.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	err := p.gateway.TriggerIndexing(ctx, rebuild)
	if err != nil {
		logger.Warn("documents: indexing trigger failed: %v", err)
	} else {
		logger.Info("documents: indexing triggered (rebuild=%t)", rebuild)
	}

	p.refreshStats(ctx)
	return err
}

// Delete removes a document. Only explicit success refreshes the list and
// statistics; on failure the cached list stays as the server last reported
// it - no optimistic removal.
func (p *DocumentPipeline) Delete(ctx context.Context, id int64) error {
	if p.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	if err := p.gateway.DeleteDocument(ctx, id); err != nil {
		return err
	}

	if err := p.Refresh(ctx); err != nil {
		logger.Warn("documents: post-delete refresh failed: %v", err)
	}
	p.refreshStats(ctx)
	return nil
}

// RefreshStats re-fetches index statistics from the backend.
func (p *DocumentPipeline) RefreshStats(ctx context.Context) error {
	if p.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	stats, err := p.gateway.IndexStats(ctx)
	if err != nil {
		logger.Warn("documents: stats refresh failed: %v", err)
		return err
	}

	p.mu.Lock()
	p.stats = *stats
	p.mu.Unlock()
	return nil
}

// refreshStats fetches index statistics, keeping the previous reading on
// failure.
func (p *DocumentPipeline) refreshStats(ctx context.Context) {
	stats, err := p.gateway.IndexStats(ctx)
	if err != nil {
		logger.Warn("documents: stats refresh failed: %v", err)
		return
	}

	p.mu.Lock()
	p.stats = *stats
	p.mu.Unlock()
}

// Documents returns a snapshot copy of the document list.
func (p *DocumentPipeline) Documents() []domain.UploadedDocument {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.UploadedDocument, len(p.docs))
	copy(out, p.docs)
	return out
}

// Stats returns the last fetched index statistics.
func (p *DocumentPipeline) Stats() domain.IndexStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// UploadPending reports whether an upload batch is in flight.
func (p *DocumentPipeline) UploadPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploading
}
