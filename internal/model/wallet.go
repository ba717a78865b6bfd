package model

// EncryptedBatchFile represents the .cwt container written by encrypted export.
// Addresses are public and stored in clear so a file can be identified
// without the password.
type EncryptedBatchFile struct {
	Version    int      `json:"version"`
	Network    string   `json:"network"`
	Records    int      `json:"records"`
	Addresses  []string `json:"addresses"`
	CreatedAt  string   `json:"createdAt"`
	Salt       string   `json:"salt"`
	Nonce      string   `json:"nonce"`
	CipherText string   `json:"cipherText"`
}

// WalletView is one rendered record of GET /wallet/batch.
// QR fields are base64 PNG, empty when encoding failed.
type WalletView struct {
	Index           int    `json:"index"`
	Type            string `json:"type,omitempty"`
	Address         string `json:"address"`
	AddressLines    string `json:"addressLines"`
	AddressQR       string `json:"addressQR,omitempty"`
	PrivateKey      string `json:"privateKey"`
	PrivateKeyLines string `json:"privateKeyLines"`
	PrivateKeyQR    string `json:"privateKeyQR,omitempty"`
	Path            string `json:"path,omitempty"`
}

// BatchResponse represents response for GET /wallet/batch
type BatchResponse struct {
	Network   string       `json:"network"`
	CreatedAt string       `json:"createdAt"`
	Count     int          `json:"count"`
	Wallets   []WalletView `json:"wallets"`
}

// ExportRequest represents request for POST /wallet/export/...
type ExportRequest struct {
	Path string `json:"path" binding:"required"`
}

// ExportResponse represents response for POST /wallet/export/...
type ExportResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

// NetworkName returns the display name of the network flag.
func NetworkName(testnet bool) string {
	if testnet {
		return "testnet"
	}
	return "mainnet"
}
