package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/paper-wallet/internal/common"
	"github.com/AlexZinkM/paper-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPayload = `[{"address":"t1abc","private_key":"Kxyz","type":"taddr"}]`

func TestMain(m *testing.M) {
	// Full-strength scrypt takes seconds per call
	scryptN = 1 << 10
	os.Exit(m.Run())
}

func header() model.EncryptedBatchFile {
	return model.EncryptedBatchFile{
		Network:   "testnet",
		Addresses: []string{"t1abc"},
		CreatedAt: "2026-01-02T03:04:05Z",
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.cwt")
	require.NoError(t, EncryptBatch(path, header(), []byte(testPayload), []byte("hunter2")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	hdr, payload, err := DecryptBatch(path, []byte("hunter2"))
	require.NoError(t, err)
	defer payload.Destroy()

	assert.Equal(t, testPayload, string(payload.Bytes()))
	assert.Equal(t, ContainerVersion, hdr.Version)
	assert.Equal(t, "testnet", hdr.Network)
	assert.Equal(t, 1, hdr.Records)
	assert.Equal(t, []string{"t1abc"}, hdr.Addresses)
}

func TestEncryptBatch_BOMAndClearHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.cwt")
	require.NoError(t, EncryptBatch(path, header(), []byte(testPayload), []byte("pw")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), `"t1abc"`)
	assert.NotContains(t, string(data), "Kxyz")

	hdr, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1abc"}, hdr.Addresses)
}

func TestDecryptBatch_WrongPassword(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.cwt")
	require.NoError(t, EncryptBatch(path, header(), []byte(testPayload), []byte("right")))

	hdr, payload, err := DecryptBatch(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Nil(t, hdr)
	assert.Nil(t, payload)
}

func TestEncryptBatch_RefusesNonEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.cwt")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0600))

	err := EncryptBatch(path, header(), []byte(testPayload), []byte("pw"))
	assert.True(t, common.IsFileExistsError(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestEncryptBatch_AcceptsEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.cwt")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	assert.NoError(t, EncryptBatch(path, header(), []byte(testPayload), []byte("pw")))
}

func TestEncryptBatch_Extension(t *testing.T) {
	t.Parallel()

	err := EncryptBatch(filepath.Join(t.TempDir(), "batch.json"), header(), []byte(testPayload), []byte("pw"))
	assert.ErrorIs(t, err, ErrBadExtension)
}

func TestReadHeader_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := ReadHeader(filepath.Join(dir, "missing.cwt"))
	assert.EqualError(t, err, "file does not exist")

	empty := filepath.Join(dir, "empty.cwt")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = ReadHeader(empty)
	assert.EqualError(t, err, "file is empty")

	future := filepath.Join(dir, "future.cwt")
	require.NoError(t, os.WriteFile(future, []byte(`{"version":99}`), 0600))
	_, err = ReadHeader(future)
	assert.Error(t, err)
}
