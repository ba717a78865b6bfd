// Package wallet owns generated wallet batches: it validates generation
// requests, parses engine payloads into records and keeps the single current
// batch, zeroing every batch it replaces.
package wallet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/paper-wallet/internal/engine"
	"github.com/AlexZinkM/paper-wallet/internal/metrics"
	"github.com/AlexZinkM/paper-wallet/internal/model"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("paperwallet/wallet")

// Orchestrator is the sole writer of the current batch.
//
// Generation requests are serialized. Readers go through View, which holds
// the slot for the duration of the callback, so a replacement never becomes
// visible half-done and never destroys a batch that is being read.
type Orchestrator struct {
	engine  engine.Engine
	metrics *metrics.Metrics

	genMu sync.Mutex

	mu      sync.RWMutex
	current *Batch
}

// NewOrchestrator creates an orchestrator with no current batch. m may be nil.
func NewOrchestrator(e engine.Engine, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		engine:  e,
		metrics: m,
	}
}

// Engine returns the engine the orchestrator generates with.
func (o *Orchestrator) Engine() engine.Engine {
	return o.engine
}

// Populate validates req, asks the engine for a new batch, parses it and
// makes it current, destroying the previous batch. On any error the previous
// batch stays current and untouched.
//
// The returned batch remains owned by the orchestrator and is destroyed by
// the next successful Populate or by Close. Concurrent callers should read
// through View instead of keeping the pointer.
func (o *Orchestrator) Populate(req model.GenerationRequest) (*Batch, error) {
	o.genMu.Lock()
	defer o.genMu.Unlock()

	if err := req.Validate(); err != nil {
		o.metrics.ObserveGeneration(metrics.ResultInvalid, 0)
		return nil, err
	}

	log.Debugf("requesting %d shielded and %d transparent addresses from %s engine (testnet=%v)",
		req.ZCount, req.TCount, o.engine.Name(), req.Testnet)

	raw, err := o.engine.Generate(req)
	if err != nil {
		if model.IsValidationError(err) {
			o.metrics.ObserveGeneration(metrics.ResultInvalid, 0)
			return nil, err
		}
		if !errors.Is(err, model.ErrEngineFailure) {
			err = fmt.Errorf("%w: %w", model.ErrEngineFailure, err)
		}
		log.Errorf("%s engine failed: %v", o.engine.Name(), err)
		o.metrics.ObserveGeneration(metrics.ResultEngine, 0)
		return nil, err
	}
	if raw.Len() == 0 {
		raw.Destroy()
		log.Errorf("%s engine returned an empty payload", o.engine.Name())
		o.metrics.ObserveGeneration(metrics.ResultEngine, 0)
		return nil, fmt.Errorf("%w: %s engine returned an empty payload", model.ErrEngineFailure, o.engine.Name())
	}

	batch, err := FromPayload(raw, req.Testnet, req.Total())
	if err != nil {
		log.Warnf("%s engine returned a malformed payload: %v", o.engine.Name(), err)
		o.metrics.ObserveGeneration(metrics.ResultParse, 0)
		return nil, err
	}

	o.replace(batch)
	o.metrics.ObserveGeneration(metrics.ResultOK, batch.Len())
	log.Infof("generated batch of %d records", batch.Len())
	return batch, nil
}

// replace swaps in b and destroys the previous batch while holding the slot.
func (o *Orchestrator) replace(b *Batch) {
	o.mu.Lock()
	defer o.mu.Unlock()

	old := o.current
	o.current = b
	old.Destroy()
	o.metrics.SetCurrent(b.Len())
}

// View calls fn with the current batch, which may be nil (empty). The batch
// must not be retained after fn returns.
func (o *Orchestrator) View(fn func(b *Batch) error) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return fn(o.current)
}

// Current returns the current batch for single-threaded callers.
func (o *Orchestrator) Current() *Batch {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

// Close destroys the current batch. The orchestrator stays usable.
func (o *Orchestrator) Close() {
	o.genMu.Lock()
	defer o.genMu.Unlock()

	o.replace(nil)
}
