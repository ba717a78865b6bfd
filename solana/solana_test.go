package solana

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/paper-wallet/internal/engine"
	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/secret"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Registered(t *testing.T) {
	t.Parallel()

	e, err := engine.New(engine.NameSolana)
	require.NoError(t, err)
	assert.Equal(t, engine.NameSolana, e.Name())
	assert.IsType(t, &Engine{}, e)
}

func TestEngine_GenerateWireContract(t *testing.T) {
	t.Parallel()

	req := model.GenerationRequest{TCount: 3, Entropy: []byte("dice rolls 4 2 6")}
	raw, err := New().Generate(req)
	require.NoError(t, err)

	batch, err := wallet.FromPayload(raw, false, req.Total())
	require.NoError(t, err)
	defer batch.Destroy()

	seen := map[string]bool{}
	for _, r := range batch.Records() {
		assert.Equal(t, AddressType, r.Kind)
		assert.False(t, r.HasSeed())

		key, err := solana.PrivateKeyFromBase58(string(r.PrivateKey.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, r.Address, key.PublicKey().String())

		assert.False(t, seen[r.Address], "duplicate address")
		seen[r.Address] = true
	}
	assert.Len(t, seen, 3)
}

func TestEngine_ZeroAddresses(t *testing.T) {
	t.Parallel()

	raw, err := New().Generate(model.GenerationRequest{})
	require.NoError(t, err)
	defer raw.Destroy()
	assert.Equal(t, "[]", string(raw.Bytes()))
}

func TestEngine_ShieldedUnsupported(t *testing.T) {
	t.Parallel()

	raw, err := New().Generate(model.GenerationRequest{ZCount: 1})
	require.Error(t, err)
	assert.Nil(t, raw)
	assert.ErrorIs(t, err, model.ErrEngineFailure)
	assert.ErrorIs(t, err, ErrShieldedUnsupported)
}

func TestEngine_ExportPDF(t *testing.T) {
	t.Parallel()

	e := New()
	raw, err := e.Generate(model.GenerationRequest{TCount: 3})
	require.NoError(t, err)
	defer raw.Destroy()
	before := string(raw.Bytes())

	path := filepath.Join(t.TempDir(), "wallets.pdf")
	require.NoError(t, e.ExportPDF(raw, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, before, string(raw.Bytes()), "payload must not change")
}

func TestEngine_ExportPDFMalformed(t *testing.T) {
	t.Parallel()

	raw := secret.New([]byte(`{"not":"an array"}`))
	defer raw.Destroy()

	err := New().ExportPDF(raw, filepath.Join(t.TempDir(), "w.pdf"))
	assert.ErrorIs(t, err, model.ErrRenderFailed)
}

func TestEngine_ExportPDFEmptyPathPanics(t *testing.T) {
	t.Parallel()

	raw := secret.New([]byte("[]"))
	defer raw.Destroy()
	assert.Panics(t, func() { _ = New().ExportPDF(raw, "") })
}

func TestValidatePrefix(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"A", "abc", "So1", "zzzzz"} {
		assert.NoError(t, ValidatePrefix(p), p)
	}
	for _, p := range []string{"", "0", "O", "I", "l", "abcdef", "a b"} {
		assert.ErrorIs(t, ValidatePrefix(p), ErrInvalidPrefix, p)
	}
}

func TestGenerateVanity(t *testing.T) {
	t.Parallel()

	key, err := GenerateVanity(context.Background(), "A", 2, []byte("entropy"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key.PublicKey().String(), "A"))
}

func TestGenerateVanity_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	key, err := GenerateVanity(ctx, "zzzzz", 4, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, key)
}

func TestEngine_GenerateWithVanity(t *testing.T) {
	t.Parallel()

	e := New(WithVanity(context.Background(), "B", 2))
	raw, err := e.Generate(model.GenerationRequest{TCount: 2})
	require.NoError(t, err)

	batch, err := wallet.FromPayload(raw, false, 2)
	require.NoError(t, err)
	defer batch.Destroy()
	for _, addr := range batch.Addresses() {
		assert.True(t, strings.HasPrefix(addr, "B"), addr)
	}
}
