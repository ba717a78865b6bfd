package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/paper-wallet/internal/common"
	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/secret"
)

// DecryptBatch reads and decrypts a .cwt file. The payload is returned in a
// secret buffer owned by the caller.
//
// password must be []byte for security (caller should zero it after use)
func DecryptBatch(filePath string, password []byte) (*model.EncryptedBatchFile, *secret.Bytes, error) {
	hdr, err := ReadHeader(filePath)
	if err != nil {
		return nil, nil, err
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(hdr.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(hdr.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(hdr.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, nil, errors.New("invalid nonce length")
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	return hdr, secret.Take(plaintext), nil
}

// ReadHeader reads the public part of a .cwt file without decryption.
func ReadHeader(filePath string) (*model.EncryptedBatchFile, error) {
	// Check if file exists
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Check that file is not empty
	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var hdr model.EncryptedBatchFile
	if err := json.Unmarshal(common.StripBOM(fileData), &hdr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	if hdr.Version > ContainerVersion {
		return nil, fmt.Errorf("unsupported container version %d", hdr.Version)
	}
	return &hdr, nil
}
