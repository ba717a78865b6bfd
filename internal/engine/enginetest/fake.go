// Package enginetest provides an in-memory wallet engine for tests.
package enginetest

import (
	"fmt"
	"os"
	"sync"

	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/secret"
)

// Fake returns a canned payload and records every call.
type Fake struct {
	mu sync.Mutex

	// Response is returned by Generate, copied into a fresh secret each call.
	Response string
	// GenerateErr, when set, is returned instead of Response.
	GenerateErr error
	// ExportErr, when set, is returned by ExportPDF.
	ExportErr error
	// WriteFile makes ExportPDF write the payload to path.
	WriteFile bool

	generateCalls int
	exportCalls   int
	lastRequest   model.GenerationRequest
	lastExport    string
	lastPath      string
}

// Name returns "fake".
func (f *Fake) Name() string {
	return "fake"
}

// Generate records the call and returns Response.
func (f *Fake) Generate(req model.GenerationRequest) (*secret.Bytes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generateCalls++
	f.lastRequest = req
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}
	if f.Response == "" {
		return nil, fmt.Errorf("%w: fake engine returned no data", model.ErrEngineFailure)
	}
	return secret.New([]byte(f.Response)), nil
}

// ExportPDF records the exact payload it was given.
func (f *Fake) ExportPDF(raw *secret.Bytes, path string) error {
	if path == "" {
		panic("enginetest: ExportPDF called with an empty path")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.exportCalls++
	f.lastExport = string(raw.Bytes())
	f.lastPath = path
	if f.ExportErr != nil {
		return f.ExportErr
	}
	if f.WriteFile {
		if err := os.WriteFile(path, raw.Bytes(), 0600); err != nil {
			return fmt.Errorf("%w: %v", model.ErrRenderFailed, err)
		}
	}
	return nil
}

// GenerateCalls returns how many times Generate ran.
func (f *Fake) GenerateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generateCalls
}

// ExportCalls returns how many times ExportPDF ran.
func (f *Fake) ExportCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exportCalls
}

// LastRequest returns the most recent generation request.
func (f *Fake) LastRequest() model.GenerationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRequest
}

// LastExport returns the payload and path of the most recent ExportPDF call.
func (f *Fake) LastExport() (payload, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastExport, f.lastPath
}
