// Package engine is the boundary to the wallet engine: the component that
// derives address/private-key pairs and renders a batch to PDF.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/secret"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("paperwallet/engine")

const (
	NameNative = "native"
	NameSolana = "solana"
)

// ErrNativeUnavailable is returned when the binary was built without the
// native engine binding.
var ErrNativeUnavailable = errors.New("native engine not built in: rebuild with cgo and -tags zecpaper, or select another engine")

// Engine generates wallet batches and renders them.
//
// Generate returns the engine's JSON payload in a secret buffer owned by the
// caller. Implementations release any engine-owned memory before returning,
// on every path. An empty or missing payload is ErrEngineFailure.
//
// ExportPDF never fails with a panic for expected conditions; renderer
// failures are ErrRenderFailed. An empty path is a programmer error.
type Engine interface {
	Name() string
	Generate(req model.GenerationRequest) (*secret.Bytes, error)
	ExportPDF(raw *secret.Bytes, path string) error
}

// Constructor builds an engine instance.
type Constructor func() (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

func init() {
	Register(NameNative, NewNative)
}

// Register makes an engine available to New. Registering a name twice panics.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[name]; dup {
		panic("engine: Register called twice for " + name)
	}
	registry[name] = c
}

// New builds the engine registered under name.
func New(name string) (Engine, error) {
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", name, Names())
	}
	e, err := c()
	if err != nil {
		return nil, fmt.Errorf("failed to start %s engine: %w", name, err)
	}
	log.Debugf("using %s engine", name)
	return e, nil
}

// Names lists registered engines in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
