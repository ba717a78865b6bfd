package main

import (
	"fmt"
	"io"

	"github.com/AlexZinkM/paper-wallet/internal/display"
	"github.com/AlexZinkM/paper-wallet/internal/pdf"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"
)

// errWriter keeps the first write error and drops every later write.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// show prints every record of batch with terminal QR codes.
func show(w io.Writer, batch *wallet.Batch) error {
	ew := &errWriter{w: w}
	for i, r := range batch.Records() {
		fmt.Fprintf(ew, "#%d %s\n%s\n", i+1, pdf.Title(r.Kind), display.Wrap(r.Address, display.AddressLineLength))
		io.WriteString(ew, display.Terminal(display.EncodeQR(r.Address)))

		io.WriteString(ew, "Private Key\n")
		lines := display.WrapSecret(r.PrivateKey, display.PrivateKeyLineLength)
		ew.Write(lines.Bytes())
		lines.Destroy()
		io.WriteString(ew, "\n")
		io.WriteString(ew, display.Terminal(display.EncodeQR(r.PrivateKey.UnsafeString())))
		if r.HasSeed() {
			fmt.Fprintf(ew, "HDSeed: %s, Path: %s\n", r.Seed.UnsafeString(), r.Path)
		}
		io.WriteString(ew, "\n")

		if ew.err != nil {
			return fmt.Errorf("failed to print wallet %d: %w", i+1, ew.err)
		}
	}
	return nil
}
