package model

// MaxAddressCount is the largest number of addresses of one kind per request.
const MaxAddressCount = 25

// GenerationRequest carries the parameters forwarded to the wallet engine.
// Entropy is user-supplied and opaque; the caller clears it after use.
type GenerationRequest struct {
	Testnet bool
	ZCount  int
	TCount  int
	Entropy []byte
}

// Validate bounds-checks both counts. Zero addresses is a valid request.
func (r *GenerationRequest) Validate() error {
	if r.ZCount < 0 || r.ZCount > MaxAddressCount {
		return &ValidationError{Field: "z_address_count", Value: r.ZCount, Max: MaxAddressCount}
	}
	if r.TCount < 0 || r.TCount > MaxAddressCount {
		return &ValidationError{Field: "t_address_count", Value: r.TCount, Max: MaxAddressCount}
	}
	return nil
}

// Total returns the number of records the engine is expected to return.
func (r *GenerationRequest) Total() int {
	return r.ZCount + r.TCount
}

// GenerateRequest represents request for POST /wallet/generate
type GenerateRequest struct {
	Testnet bool   `json:"testnet"`
	ZCount  int    `json:"zCount"`
	TCount  int    `json:"tCount"`
	Entropy string `json:"entropy"`
}

// GenerateResponse represents response for POST /wallet/generate
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}
