// Package export persists the current batch: PDF through the wallet engine,
// the raw payload as a JSON file, or the payload in an encrypted container.
// Exports only read the batch; its secrets are released by the orchestrator.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/paper-wallet/internal/crypto"
	"github.com/AlexZinkM/paper-wallet/internal/engine"
	"github.com/AlexZinkM/paper-wallet/internal/metrics"
	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	"github.com/facebookgo/atomicfile"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("paperwallet/export")

// Export formats, used as metric labels.
const (
	FormatPDF       = "pdf"
	FormatJSON      = "json"
	FormatEncrypted = "encrypted"
)

// Pipeline writes batches to disk.
type Pipeline struct {
	engine  engine.Engine
	metrics *metrics.Metrics
}

// NewPipeline creates a pipeline rendering PDFs with e. m may be nil.
func NewPipeline(e engine.Engine, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		engine:  e,
		metrics: m,
	}
}

// ExportPDF asks the engine to render b to path. An empty batch is a no-op.
// Renderer failures are model.ErrRenderFailed; an empty path is
// model.ErrIOFailed.
func (p *Pipeline) ExportPDF(b *wallet.Batch, path string) error {
	if b.Empty() {
		p.skipped(FormatPDF)
		return nil
	}
	if path == "" {
		p.metrics.ObserveExport(FormatPDF, metrics.ResultIOFail)
		return fmt.Errorf("%w: empty path", model.ErrIOFailed)
	}

	if err := p.engine.ExportPDF(b.Raw(), path); err != nil {
		if !errors.Is(err, model.ErrRenderFailed) {
			err = fmt.Errorf("%w: %w", model.ErrRenderFailed, err)
		}
		log.Errorf("%s engine failed to render %d records: %v", p.engine.Name(), b.Len(), err)
		p.metrics.ObserveExport(FormatPDF, metrics.ResultRenderFail)
		return err
	}

	p.done(FormatPDF, b)
	return nil
}

// ExportJSON writes the raw engine payload to path byte for byte, replacing
// any existing file atomically. An empty batch is a no-op.
func (p *Pipeline) ExportJSON(b *wallet.Batch, path string) error {
	if b.Empty() {
		p.skipped(FormatJSON)
		return nil
	}
	if err := writeAtomic(path, b.Raw().Bytes()); err != nil {
		p.metrics.ObserveExport(FormatJSON, metrics.ResultIOFail)
		return fmt.Errorf("%w: %w", model.ErrIOFailed, err)
	}

	p.done(FormatJSON, b)
	return nil
}

// ExportEncrypted writes the raw payload into a password-protected .cwt
// container. Existing non-empty files are refused. An empty batch is a no-op.
//
// password must be []byte for security (caller should zero it after use)
func (p *Pipeline) ExportEncrypted(b *wallet.Batch, path string, password []byte) error {
	if b.Empty() {
		p.skipped(FormatEncrypted)
		return nil
	}
	if len(password) == 0 {
		p.metrics.ObserveExport(FormatEncrypted, metrics.ResultIOFail)
		return fmt.Errorf("%w: password is empty", model.ErrIOFailed)
	}

	hdr := model.EncryptedBatchFile{
		Network:   model.NetworkName(b.Testnet()),
		Addresses: b.Addresses(),
		CreatedAt: b.CreatedAt().UTC().Format(time.RFC3339),
	}
	if err := crypto.EncryptBatch(path, hdr, b.Raw().Bytes(), password); err != nil {
		p.metrics.ObserveExport(FormatEncrypted, metrics.ResultIOFail)
		return fmt.Errorf("%w: %w", model.ErrIOFailed, err)
	}

	p.done(FormatEncrypted, b)
	return nil
}

func (p *Pipeline) skipped(format string) {
	log.Infof("%s export skipped: batch is empty", format)
	p.metrics.ObserveExport(format, metrics.ResultSkipped)
}

func (p *Pipeline) done(format string, b *wallet.Batch) {
	log.Infof("exported %d records as %s", b.Len(), format)
	p.metrics.ObserveExport(format, metrics.ResultOK)
}

func writeAtomic(path string, data []byte) error {
	if path == "" {
		return errors.New("empty path")
	}

	f, err := atomicfile.New(path, 0600)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
