// Package secret holds key material in owned buffers that are overwritten
// with zeros when they are released.
package secret

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"runtime"
	"unsafe"
)

const redacted = "[REDACTED]"

// ErrNotSerializable is returned when a secret is passed to a JSON encoder.
var ErrNotSerializable = errors.New("secret: value is not serializable")

// Bytes is an owned secret buffer. The zero value is an empty, already
// destroyed secret. A Bytes must not be copied by value after first use.
//
// Destroy zeroes every byte of the backing array, including spare capacity.
// A finalizer calls Destroy for buffers their owner forgot to release, so
// zeroization also happens on paths that drop the last reference.
type Bytes struct {
	buf    []byte
	locked bool
}

// New copies b into a fresh secret buffer. The caller still owns b and
// should clear it once it is no longer needed.
func New(b []byte) *Bytes {
	buf := make([]byte, len(b))
	copy(buf, b)
	return Take(buf)
}

// Take adopts b as the backing array without copying. The caller must not
// use b afterwards.
func Take(b []byte) *Bytes {
	s := &Bytes{buf: b}
	s.locked = lock(b)
	runtime.SetFinalizer(s, (*Bytes).Destroy)
	return s
}

// Alloc returns a zeroed secret buffer of length n.
func Alloc(n int) *Bytes {
	return Take(make([]byte, n))
}

// Bytes returns the backing slice. It stays valid until Destroy.
func (s *Bytes) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.buf
}

// Len returns the number of secret bytes held.
func (s *Bytes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// Destroyed reports whether the buffer was released.
func (s *Bytes) Destroyed() bool {
	return s == nil || s.buf == nil
}

// UnsafeString returns a string view sharing memory with the buffer.
// No copy is made, so the view reads zeros once Destroy has run and must not
// be retained past the owner's lifetime.
func (s *Bytes) UnsafeString() string {
	if s.Len() == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(s.buf), len(s.buf))
}

// Equal compares the secret against b in constant time.
func (s *Bytes) Equal(b []byte) bool {
	return subtle.ConstantTimeCompare(s.Bytes(), b) == 1
}

// EqualString compares the secret against v in constant time.
func (s *Bytes) EqualString(v string) bool {
	return s.Equal([]byte(v))
}

// Clone returns an independent copy with its own lifetime.
func (s *Bytes) Clone() *Bytes {
	return New(s.Bytes())
}

// Destroy overwrites the buffer with zeros and releases it. It is safe to
// call more than once and on a nil receiver.
func (s *Bytes) Destroy() {
	if s == nil || s.buf == nil {
		return
	}
	full := s.buf[:cap(s.buf)]
	clear(full)
	if s.locked {
		unlock(full)
		s.locked = false
	}
	runtime.KeepAlive(full)
	s.buf = nil
	runtime.SetFinalizer(s, nil)
}

// String never reveals the content.
func (s *Bytes) String() string {
	return redacted
}

// GoString never reveals the content.
func (s *Bytes) GoString() string {
	return redacted
}

// Format keeps every fmt verb from printing the buffer.
func (s *Bytes) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON refuses to serialize secret content.
func (s *Bytes) MarshalJSON() ([]byte, error) {
	return nil, ErrNotSerializable
}

// Wipe zeroes b in place. Use it for temporary buffers that never become a
// Bytes.
func Wipe(b []byte) {
	clear(b[:cap(b)])
	runtime.KeepAlive(b)
}
