package display

import (
	"encoding/base64"

	"github.com/AlexZinkM/paper-wallet/internal/secret"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"
)

// DefaultQRSize is the default QR code size in pixels.
const DefaultQRSize = 256

// Card is one record prepared for presentation. Everything derived from the
// private key lives in secret buffers released by Destroy.
type Card struct {
	Index        int
	Kind         string
	Address      string
	AddressLines string
	AddressQR    string // base64 PNG, empty when encoding failed
	Path         string

	PrivateKeyLines *secret.Bytes
	PrivateKeyQR    *secret.Bytes // base64 PNG, empty when encoding failed
}

// Destroy zeroes the key-derived fields.
func (c *Card) Destroy() {
	if c == nil {
		return
	}
	c.PrivateKeyLines.Destroy()
	c.PrivateKeyQR.Destroy()
}

// Formatter builds cards with QR codes of a fixed pixel size.
type Formatter struct {
	qrSize int
}

// NewFormatter returns a Formatter; non-positive sizes use DefaultQRSize.
func NewFormatter(qrSize int) *Formatter {
	if qrSize <= 0 {
		qrSize = DefaultQRSize
	}
	return &Formatter{qrSize: qrSize}
}

// Card formats record r at position index.
func (f *Formatter) Card(index int, r *wallet.Record) *Card {
	return &Card{
		Index:           index,
		Kind:            r.Kind,
		Address:         r.Address,
		AddressLines:    Wrap(r.Address, AddressLineLength),
		AddressQR:       f.QRBase64(r.Address),
		Path:            r.Path,
		PrivateKeyLines: WrapSecret(r.PrivateKey, PrivateKeyLineLength),
		PrivateKeyQR:    f.secretQRBase64(r.PrivateKey),
	}
}

// Cards formats every record of b in order.
func (f *Formatter) Cards(b *wallet.Batch) []*Card {
	records := b.Records()
	cards := make([]*Card, 0, len(records))
	for i, r := range records {
		cards = append(cards, f.Card(i, r))
	}
	return cards
}

// DestroyCards releases every card.
func DestroyCards(cards []*Card) {
	for _, c := range cards {
		c.Destroy()
	}
}

// PNG returns the QR code of text as PNG, or nil when it cannot be encoded.
func (f *Formatter) PNG(text string) []byte {
	qr := EncodeQR(text)
	if qr == nil {
		return nil
	}
	png, err := qr.PNG(f.qrSize)
	if err != nil {
		log.Warnf("qr png rendering failed: %v", err)
		return nil
	}
	return png
}

// QRBase64 returns the QR code of text as base64 PNG, "" on failure.
func (f *Formatter) QRBase64(text string) string {
	png := f.PNG(text)
	if png == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(png)
}

// secretQRBase64 encodes a secret without leaving unowned copies of the PNG
// or its base64 form.
func (f *Formatter) secretQRBase64(s *secret.Bytes) *secret.Bytes {
	png := f.PNG(s.UnsafeString())
	if png == nil {
		return secret.Alloc(0)
	}
	defer secret.Wipe(png)

	out := secret.Alloc(base64.StdEncoding.EncodedLen(len(png)))
	base64.StdEncoding.Encode(out.Bytes(), png)
	return out
}
