//go:build !(cgo && zecpaper)

package engine

// NewNative reports that the native binding is not compiled in.
func NewNative() (Engine, error) {
	return nil, ErrNativeUnavailable
}
