//go:build cgo && zecpaper

package engine

/*
#cgo LDFLAGS: -lzecpaperrust
#include <stdbool.h>
#include <stdlib.h>
#include <string.h>

extern char * rust_generate_wallet(bool testnet, unsigned int zcount, unsigned int tcount, const char* entropy);
extern void   rust_free_string(char * s);
extern bool   rust_save_to_pdf(const char* json, const char* filename);
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/secret"
)

// fillerByte overwrites engine-owned strings before release. rust_free_string
// recomputes the allocation size with strlen, so the filler must be non-zero.
const fillerByte = 'x'

// Native calls the shielded wallet engine through its C ABI.
type Native struct{}

// NewNative returns the cgo-backed engine.
func NewNative() (Engine, error) {
	return &Native{}, nil
}

// Name returns the registry name.
func (n *Native) Name() string {
	return NameNative
}

// Generate calls rust_generate_wallet and copies the result into a secret
// buffer. The engine-owned string is scrubbed and freed exactly once.
func (n *Native) Generate(req model.GenerationRequest) (*secret.Bytes, error) {
	// Counts cross into unsigned C ints
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cEntropy, freeEntropy := cSecretString(req.Entropy)
	defer freeEntropy()

	out := C.rust_generate_wallet(C.bool(req.Testnet), C.uint(req.ZCount), C.uint(req.TCount), cEntropy)
	if out == nil {
		return nil, fmt.Errorf("%w: %s engine returned no data", model.ErrEngineFailure, NameNative)
	}
	defer releaseEngineString(out)

	size := int(C.strlen(out))
	if size == 0 {
		return nil, fmt.Errorf("%w: %s engine returned an empty result", model.ErrEngineFailure, NameNative)
	}

	raw := secret.Alloc(size)
	copy(raw.Bytes(), unsafe.Slice((*byte)(unsafe.Pointer(out)), size))
	return raw, nil
}

// ExportPDF hands the payload to rust_save_to_pdf.
func (n *Native) ExportPDF(raw *secret.Bytes, path string) error {
	if path == "" {
		panic("engine: ExportPDF called with an empty path")
	}

	cJSON, freeJSON := cSecretString(raw.Bytes())
	defer freeJSON()

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	if !bool(C.rust_save_to_pdf(cJSON, cPath)) {
		return fmt.Errorf("%w: %s engine could not write %s", model.ErrRenderFailed, NameNative, path)
	}
	return nil
}

// cSecretString copies b into C memory as a NUL-terminated string. The
// returned func zeroes and frees the copy.
func cSecretString(b []byte) (*C.char, func()) {
	size := len(b) + 1
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		panic("engine: out of memory")
	}

	buf := unsafe.Slice((*byte)(ptr), size)
	copy(buf, b)
	buf[len(b)] = 0

	return (*C.char)(ptr), func() {
		C.memset(ptr, 0, C.size_t(size))
		C.free(ptr)
	}
}

// releaseEngineString scrubs and returns a string allocated by the engine.
func releaseEngineString(s *C.char) {
	size := C.strlen(s)
	C.memset(unsafe.Pointer(s), fillerByte, size)
	C.rust_free_string(s)
}
