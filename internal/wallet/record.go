package wallet

import (
	"time"

	"github.com/AlexZinkM/paper-wallet/internal/secret"
)

// Record is one generated address with its private key. The key (and the
// optional HD seed) are owned by the record and zeroed by Destroy.
type Record struct {
	Address    string
	Kind       string
	PrivateKey *secret.Bytes
	Seed       *secret.Bytes
	Path       string
}

// HasSeed reports whether the engine supplied an HD seed for this record.
func (r *Record) HasSeed() bool {
	return r.Seed.Len() > 0
}

// Destroy zeroes the record's secret material.
func (r *Record) Destroy() {
	if r == nil {
		return
	}
	r.PrivateKey.Destroy()
	r.Seed.Destroy()
}

func destroyRecords(records []*Record) {
	for _, r := range records {
		r.Destroy()
	}
}

// Batch is the ordered set of records from one generation request together
// with the engine payload they were parsed from. A nil *Batch is empty.
type Batch struct {
	records   []*Record
	raw       *secret.Bytes
	testnet   bool
	createdAt time.Time
}

// Len returns the number of records.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// Empty reports whether the batch holds no records.
func (b *Batch) Empty() bool {
	return b.Len() == 0
}

// Records returns the records in generation order. The slice is a copy; the
// records are still owned by the batch.
func (b *Batch) Records() []*Record {
	if b == nil {
		return nil
	}
	out := make([]*Record, len(b.records))
	copy(out, b.records)
	return out
}

// Addresses returns the public addresses in generation order.
func (b *Batch) Addresses() []string {
	out := make([]string, 0, b.Len())
	for _, r := range b.Records() {
		out = append(out, r.Address)
	}
	return out
}

// Raw returns the engine payload, byte for byte. Owned by the batch.
func (b *Batch) Raw() *secret.Bytes {
	if b == nil {
		return nil
	}
	return b.raw
}

// Testnet reports the network the batch was generated for.
func (b *Batch) Testnet() bool {
	return b != nil && b.testnet
}

// CreatedAt returns the generation time.
func (b *Batch) CreatedAt() time.Time {
	if b == nil {
		return time.Time{}
	}
	return b.createdAt
}

// Destroy zeroes every record and the raw payload.
func (b *Batch) Destroy() {
	if b == nil {
		return
	}
	destroyRecords(b.records)
	b.records = nil
	b.raw.Destroy()
}
