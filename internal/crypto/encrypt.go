// Package crypto reads and writes password-protected .cwt batch containers:
// scrypt key derivation and AES-256-GCM over the raw engine payload.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/paper-wallet/internal/common"
	"github.com/AlexZinkM/paper-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

// Extension is the required file extension of encrypted containers.
const Extension = ".cwt"

// ContainerVersion is written to every new container.
const ContainerVersion = 1

const (
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// scrypt parameters. N=2^18 needs ~256MB RAM and 0.5-2s per derivation,
// which keeps brute force expensive while still running on phones.
var (
	scryptN = 1 << 18
	scryptR = 8
	scryptP = 1
)

var (
	// ErrBadExtension is returned for paths without the .cwt extension.
	ErrBadExtension = errors.New("file must have " + Extension + " extension")
	// ErrInvalidPassword is returned when the container does not authenticate.
	ErrInvalidPassword = errors.New("invalid password")
)

// EncryptBatch encrypts payload and writes it to filePath together with the
// public header fields of hdr (network, record count, addresses, creation
// time). Existing non-empty files are refused with common.FileExistsError.
//
// password must be []byte for security (caller should zero it after use)
func EncryptBatch(filePath string, hdr model.EncryptedBatchFile, payload, password []byte) error {
	// Check file extension (should be .cwt)
	if !strings.HasSuffix(filePath, Extension) {
		return ErrBadExtension
	}

	if err := common.EnsureWritable(filePath); err != nil {
		return err
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return err
	}

	ciphertext := aesGCM.Seal(nil, nonce, payload, nil)

	hdr.Version = ContainerVersion
	hdr.Records = len(hdr.Addresses)
	hdr.Salt = base64.StdEncoding.EncodeToString(salt)
	hdr.Nonce = base64.StdEncoding.EncodeToString(nonce)
	hdr.CipherText = base64.StdEncoding.EncodeToString(ciphertext)

	fileData, err := json.MarshalIndent(hdr, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	if err := os.WriteFile(filePath, common.WithBOM(fileData), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// newGCM derives the container key and wipes it once the cipher is built.
func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
