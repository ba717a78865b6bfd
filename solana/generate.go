// Package solana is an in-process wallet engine producing Solana ed25519
// keypairs. It speaks the same JSON wire contract as the native engine, so
// batches from either engine flow through the same parser, display and
// export code.
package solana

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/paper-wallet/internal/engine"
	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/pdf"
	"github.com/AlexZinkM/paper-wallet/internal/secret"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
	"github.com/tidwall/sjson"
	"golang.org/x/crypto/hkdf"
)

var log = logging.Logger("paperwallet/solana")

const (
	// AddressType is the "type" field of every record this engine emits.
	AddressType = "solana"

	seedLen = ed25519.SeedSize
)

// ErrShieldedUnsupported is returned for requests with z-addresses.
var ErrShieldedUnsupported = errors.New("solana engine cannot generate shielded addresses")

func init() {
	engine.Register(engine.NameSolana, func() (engine.Engine, error) {
		return New(), nil
	})
}

// Engine generates Solana keypairs locally.
type Engine struct {
	ctx     context.Context
	prefix  string
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithVanity makes every generated address start with prefix, searched by
// workers goroutines. ctx cancels a running search.
func WithVanity(ctx context.Context, prefix string, workers int) Option {
	return func(e *Engine) {
		e.ctx = ctx
		e.prefix = prefix
		e.workers = workers
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{ctx: context.Background(), workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns engine.NameSolana.
func (e *Engine) Name() string {
	return engine.NameSolana
}

// Generate returns a JSON array of req.TCount keypairs. The testnet flag does
// not change Solana key encoding and is ignored.
func (e *Engine) Generate(req model.GenerationRequest) (*secret.Bytes, error) {
	if req.ZCount > 0 {
		return nil, fmt.Errorf("%w: %w", model.ErrEngineFailure, ErrShieldedUnsupported)
	}
	if e.prefix != "" {
		if err := ValidatePrefix(e.prefix); err != nil {
			return nil, err
		}
	}

	payload := []byte("[]")
	for i := 0; i < req.TCount; i++ {
		key, err := e.newKey(req.Entropy)
		if err != nil {
			secret.Wipe(payload)
			return nil, fmt.Errorf("%w: %w", model.ErrEngineFailure, err)
		}

		next, err := appendRecord(payload, i, key)
		clear(key)
		secret.Wipe(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrEngineFailure, err)
		}
		payload = next
	}

	log.Debugf("generated %d keypairs", req.TCount)
	return secret.Take(payload), nil
}

// ExportPDF renders the payload with the built-in PDF renderer.
func (e *Engine) ExportPDF(raw *secret.Bytes, path string) error {
	if path == "" {
		panic("solana: ExportPDF called with an empty path")
	}

	records, err := wallet.ParseRecords(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrRenderFailed, err)
	}
	defer func() {
		for _, r := range records {
			r.Destroy()
		}
	}()

	if err := pdf.WriteFile(path, records); err != nil {
		return fmt.Errorf("%w: %w", model.ErrRenderFailed, err)
	}
	return nil
}

func (e *Engine) newKey(entropy []byte) (solana.PrivateKey, error) {
	if e.prefix != "" {
		return GenerateVanity(e.ctx, e.prefix, e.workers, entropy)
	}
	return newPrivateKey(entropy)
}

// newPrivateKey derives an ed25519 key from fresh OS randomness, extracted
// with HKDF-SHA256 using the user entropy as salt.
func newPrivateKey(entropy []byte) (solana.PrivateKey, error) {
	ikm := make([]byte, seedLen)
	defer clear(ikm)
	if _, err := io.ReadFull(rand.Reader, ikm); err != nil {
		return nil, fmt.Errorf("failed to read randomness: %w", err)
	}

	seed := hkdf.Extract(sha256.New, ikm, entropy)
	defer clear(seed)
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// appendRecord returns payload with one more element. Every intermediate
// buffer holding key material is wiped.
func appendRecord(payload []byte, index int, key solana.PrivateKey) ([]byte, error) {
	elem, err := setString([]byte("{}"), "address", key.PublicKey().String())
	if err != nil {
		return nil, err
	}
	elem, err = setString(elem, "private_key", key.String())
	if err != nil {
		return nil, err
	}
	elem, err = setString(elem, "type", AddressType)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(elem)

	out, err := sjson.SetRawBytes(payload, fmt.Sprint(index), elem)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return out, nil
}

func setString(json []byte, path, value string) ([]byte, error) {
	out, err := sjson.SetBytes(json, path, value)
	secret.Wipe(json)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return out, nil
}
