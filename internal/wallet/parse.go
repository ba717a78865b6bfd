package wallet

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/secret"

	"github.com/tidwall/gjson"
)

// Wire field names of the engine payload
const (
	fieldAddress    = "address"
	fieldPrivateKey = "private_key"
	fieldType       = "type"
	fieldSeed       = "seed"
	fieldHDSeed     = "HDSeed"
	fieldPath       = "path"
)

// ParseRecords decodes an engine payload into records. raw is not consumed.
// Parsing is all-or-nothing: on error every record built so far is destroyed.
//
// The payload is read through a zero-copy view, so the only copies of key
// material are the records' own secret buffers. Public fields are cloned out
// of the view because it is wiped with the payload.
func ParseRecords(raw *secret.Bytes) ([]*Record, error) {
	data := raw.UnsafeString()
	if !gjson.Valid(data) {
		return nil, &model.ParseError{Index: -1, Reason: "invalid JSON"}
	}

	root := gjson.Parse(data)
	if !root.IsArray() {
		return nil, &model.ParseError{Index: -1, Reason: "not an array"}
	}

	records := make([]*Record, 0)
	var parseErr error
	root.ForEach(func(_, el gjson.Result) bool {
		rec, err := parseRecord(len(records), el)
		if err != nil {
			parseErr = err
			return false
		}
		records = append(records, rec)
		return true
	})
	if parseErr != nil {
		destroyRecords(records)
		return nil, parseErr
	}
	return records, nil
}

func parseRecord(index int, el gjson.Result) (*Record, error) {
	if !el.IsObject() {
		return nil, &model.ParseError{Index: index, Reason: "not an object"}
	}

	address, err := requiredString(index, fieldAddress, el.Get(fieldAddress))
	if err != nil {
		return nil, err
	}
	pk, err := requiredString(index, fieldPrivateKey, el.Get(fieldPrivateKey))
	if err != nil {
		return nil, err
	}
	kind, err := optionalString(index, fieldType, el.Get(fieldType))
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Address:    strings.Clone(address.Str),
		Kind:       strings.Clone(kind.Str),
		PrivateKey: keyBuffer(pk.Str),
	}

	seed := el.Get(fieldSeed)
	if !seed.Exists() || seed.Type == gjson.Null {
		return rec, nil
	}
	if !seed.IsObject() {
		rec.Destroy()
		return nil, &model.ParseError{Index: index, Field: fieldSeed, Reason: "is not an object"}
	}
	hd, err := optionalString(index, fieldSeed+"."+fieldHDSeed, seed.Get(fieldHDSeed))
	if err != nil {
		rec.Destroy()
		return nil, err
	}
	path, err := optionalString(index, fieldSeed+"."+fieldPath, seed.Get(fieldPath))
	if err != nil {
		rec.Destroy()
		return nil, err
	}
	if hd.Str != "" {
		rec.Seed = keyBuffer(hd.Str)
	}
	rec.Path = strings.Clone(path.Str)
	return rec, nil
}

func requiredString(index int, field string, v gjson.Result) (gjson.Result, error) {
	if !v.Exists() {
		return v, &model.ParseError{Index: index, Field: field, Reason: "is missing"}
	}
	if v.Type != gjson.String {
		return v, &model.ParseError{Index: index, Field: field, Reason: "is not a string"}
	}
	return v, nil
}

func optionalString(index int, field string, v gjson.Result) (gjson.Result, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return gjson.Result{}, nil
	}
	if v.Type != gjson.String {
		return v, &model.ParseError{Index: index, Field: field, Reason: "is not a string"}
	}
	return v, nil
}

// keyBuffer allocates the secret buffers of parsed records.
var keyBuffer = secretString

// secretString copies s into a fresh secret without an intermediate []byte.
func secretString(s string) *secret.Bytes {
	out := secret.Alloc(len(s))
	copy(out.Bytes(), s)
	return out
}

// FromPayload parses raw into a batch that takes ownership of raw. expected
// is the record count the request asked for; a negative value skips the
// check. On error raw is destroyed.
func FromPayload(raw *secret.Bytes, testnet bool, expected int) (*Batch, error) {
	records, err := ParseRecords(raw)
	if err != nil {
		raw.Destroy()
		return nil, err
	}
	if expected >= 0 && len(records) != expected {
		destroyRecords(records)
		raw.Destroy()
		return nil, &model.ParseError{
			Index:  -1,
			Reason: fmt.Sprintf("expected %d records, got %d", expected, len(records)),
		}
	}

	return &Batch{
		records:   records,
		raw:       raw,
		testnet:   testnet,
		createdAt: time.Now(),
	}, nil
}
