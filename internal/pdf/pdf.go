// Package pdf renders wallet records as a printable A4 document, two
// wallets per page.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/AlexZinkM/paper-wallet/internal/display"
	"github.com/AlexZinkM/paper-wallet/internal/secret"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	"github.com/go-pdf/fpdf"
)

const (
	pageHeight       = 297.0
	walletsPerPage   = 2
	slotHeight       = 140.0
	addressQRSize    = 40.0
	privateKeyQRSize = 50.0
	qrPixels         = 512

	addressChars    = 39
	privateKeyChars = 45
)

// Write renders records to w. An empty list yields a single blank page.
func Write(w io.Writer, records []*wallet.Record) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Paper Wallet", false)
	doc.SetAutoPageBreak(false, 0)

	totalPages := (len(records) + walletsPerPage - 1) / walletsPerPage
	if totalPages == 0 {
		totalPages = 1
	}

	doc.AddPage()
	for i, r := range records {
		pos := i % walletsPerPage
		if i > 0 && pos == 0 {
			doc.AddPage()
		}

		if err := addAddress(doc, i, r, pos); err != nil {
			return err
		}
		if err := addPrivateKey(doc, i, r, pos); err != nil {
			return err
		}

		// Separator and footer once per page
		if pos == 0 {
			doc.SetLineWidth(0.7)
			doc.Line(5, pageHeight-160, 205, pageHeight-160)

			doc.SetFont("Courier", "", 10)
			doc.Text(5, pageHeight-5, fmt.Sprintf("Page %d of %d", i/walletsPerPage+1, totalPages))
		}
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// WriteFile renders records into the file at path, creating or truncating it.
func WriteFile(path string, records []*wallet.Record) error {
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return err
	}
	defer secret.Wipe(buf.Bytes())

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Title returns the heading printed above an address of the given kind.
func Title(kind string) string {
	switch kind {
	case "zaddr":
		return "ZEC Address (Sapling)"
	case "taddr":
		return "T Address"
	case "solana":
		return "Solana Address"
	default:
		return "Address"
	}
}

func addAddress(doc *fpdf.Fpdf, index int, r *wallet.Record, pos int) error {
	top := 15 + slotHeight*float64(pos)
	if err := addQR(doc, fmt.Sprintf("addr-%d", index), r.Address, 10, top, addressQRSize); err != nil {
		return err
	}

	doc.SetFont("Courier", "B", 14)
	doc.Text(55, top+12.5, Title(r.Kind))

	// No spaces, so the address can be copied
	doc.SetFont("Courier", "", 12)
	for i, line := range display.Chunks(r.Address, addressChars) {
		doc.Text(55, top+20+5*float64(i), line)
	}
	return nil
}

func addPrivateKey(doc *fpdf.Fpdf, index int, r *wallet.Record, pos int) error {
	top := 72.5 + slotHeight*float64(pos)
	pk := r.PrivateKey.UnsafeString()
	if err := addQR(doc, fmt.Sprintf("pk-%d", index), pk, 145, top, privateKeyQRSize); err != nil {
		return err
	}

	doc.SetFont("Courier", "B", 14)
	doc.Text(10, top, "Private Key")

	doc.SetFont("Courier", "", 12)
	for i, line := range display.Chunks(pk, privateKeyChars) {
		doc.Text(10, top+7.5+5*float64(i), line)
	}

	if r.HasSeed() {
		doc.SetFont("Courier", "", 8)
		doc.Text(10, top+57.5, fmt.Sprintf("HDSeed: %s, Path: %s", r.Seed.UnsafeString(), r.Path))
	}
	return nil
}

// addQR places the QR code of text at (x, y). Text too long for a QR code
// leaves the slot empty.
func addQR(doc *fpdf.Fpdf, name, text string, x, y, size float64) error {
	qr := display.EncodeQR(text)
	if qr == nil {
		return nil
	}

	png, err := qr.PNG(qrPixels)
	if err != nil {
		return fmt.Errorf("failed to generate PNG: %w", err)
	}
	defer secret.Wipe(png)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	doc.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return nil
}
