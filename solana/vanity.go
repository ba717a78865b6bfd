package solana

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"
)

// MaxVanityPrefix is the longest prefix GenerateVanity accepts.
const MaxVanityPrefix = 5

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	// ErrInvalidPrefix is returned for prefixes no address can start with.
	ErrInvalidPrefix = errors.New("invalid vanity prefix")

	errFound = errors.New("vanity address found")
)

// ValidatePrefix checks that prefix is non-empty base58 of at most
// MaxVanityPrefix characters.
func ValidatePrefix(prefix string) error {
	if prefix == "" || len(prefix) > MaxVanityPrefix {
		return fmt.Errorf("%w: length must be 1 to %d", ErrInvalidPrefix, MaxVanityPrefix)
	}
	for _, c := range prefix {
		if !strings.ContainsRune(base58Alphabet, c) {
			return fmt.Errorf("%w: %q is not a base58 character", ErrInvalidPrefix, c)
		}
	}
	return nil
}

// GenerateVanity searches for a key whose address starts with prefix using
// workers goroutines. The first match stops every worker; cancelling ctx
// stops the search with ctx.Err().
func GenerateVanity(ctx context.Context, prefix string, workers int, entropy []byte) (solana.PrivateKey, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	found := make(chan solana.PrivateKey, 1)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for attempts := 1; ; attempts++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				key, err := newPrivateKey(entropy)
				if err != nil {
					return err
				}
				if !strings.HasPrefix(key.PublicKey().String(), prefix) {
					clear(key)
					continue
				}

				select {
				case found <- key:
					log.Debugf("vanity match after %d attempts", attempts)
					return errFound
				default:
					// Another worker won
					clear(key)
					return nil
				}
			}
		})
	}

	err := g.Wait()
	select {
	case key := <-found:
		return key, nil
	default:
	}
	if err == nil || errors.Is(err, errFound) {
		err = ctx.Err()
	}
	return nil, err
}
