package display

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/AlexZinkM/paper-wallet/internal/secret"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddr = "ztestsapling1w00pdjthkzmzgut4c3y7hu6q6c8ferjczyvc03xwu0rvdgtre8a25em5w3w6jxghvcar5jzehnn"
	testPK   = "secret-extended-key-test1qj7vst8eqqqqqqpu2w6r0p2ykewm95h3d28k7r7y87e9p4v5zhzd4hj2y57clsprjveg997vqk7ak9tr2pnyyxmfzyzs6dhtuflt3aea9srp08teskpqfy2dtm07n08z3dyra407xumf3fk9ds4x06rzur7mgfyu39krj2g28lsxsxtv7swzu0j9vw4qf8rn5z72ztgeqj6u5zehylqm75c7d3um9ds9zvek4tdyta7qhln5fkc0dks6qwmkvr48fvgucpc3542kmdc97uqzt"
)

func decodeQR(t *testing.T, pngData []byte) string {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(pngData))
	require.NoError(t, err)
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	return result.GetText()
}

func TestWrap_ShortTextUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", Wrap("abc", 3))
	assert.Equal(t, "abc", Wrap("abc", 44))
	assert.Equal(t, "", Wrap("", 5))
	assert.Equal(t, "abc", Wrap("abc", 0))
}

func TestWrap_ReferenceWidths(t *testing.T) {
	t.Parallel()

	lines := strings.Split(Wrap(testAddr, AddressLineLength), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], AddressLineLength)
	assert.Equal(t, "ztestsapling1w00pdjthkzmzgut4c3y7hu6q6c8ferj", lines[0])

	lines = strings.Split(Wrap(testPK, PrivateKeyLineLength), "\n")
	for _, l := range lines[:len(lines)-1] {
		assert.Len(t, l, PrivateKeyLineLength)
	}
}

func TestWrap_RoundTripAllWidths(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"a", testAddr, testPK, "ünïcödé-äddrëss-✓"} {
		for n := 1; n < 100; n++ {
			wrapped := Wrap(s, n)
			assert.Equal(t, s, strings.ReplaceAll(wrapped, "\n", ""), "n=%d", n)

			lines := strings.Split(wrapped, "\n")
			for i, l := range lines {
				count := utf8.RuneCountInString(l)
				if i < len(lines)-1 {
					assert.Equal(t, n, count, "n=%d line=%d", n, i)
				} else {
					assert.LessOrEqual(t, count, n)
					assert.Positive(t, count)
				}
			}
		}
	}
}

func TestWrapSecret_MatchesWrap(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 7, 44, 59, 500} {
		s := secret.New([]byte(testPK))
		w := WrapSecret(s, n)
		assert.Equal(t, Wrap(testPK, n), string(w.Bytes()), "n=%d", n)
		w.Destroy()
		assert.True(t, s.EqualString(testPK), "source must be untouched")
		s.Destroy()
	}
}

func TestChunks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"ab", "cd", "e"}, Chunks("abcde", 2))
	assert.Equal(t, []string{"ab", "cd"}, Chunks("abcd", 2))
	assert.Equal(t, []string{""}, Chunks("", 2))
	assert.Equal(t, []string{"abc"}, Chunks("abc", 0))
}

func TestEncodeQR(t *testing.T) {
	t.Parallel()

	qr := EncodeQR(testAddr)
	require.NotNil(t, qr)

	pngData, err := qr.PNG(256)
	require.NoError(t, err)
	assert.Equal(t, testAddr, decodeQR(t, pngData))
}

func TestEncodeQR_TooLongIsPlaceholder(t *testing.T) {
	t.Parallel()

	assert.Nil(t, EncodeQR(strings.Repeat("x", 8000)))
	assert.Equal(t, "[QR unavailable]\n", Terminal(nil))

	f := NewFormatter(0)
	assert.Nil(t, f.PNG(strings.Repeat("x", 8000)))
	assert.Empty(t, f.QRBase64(strings.Repeat("x", 8000)))
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	out := Terminal(EncodeQR("t1abc"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(l))
	}
}

func TestFormatter_Cards(t *testing.T) {
	t.Parallel()

	batch, err := wallet.FromPayload(secret.New([]byte(
		`[{"address":"`+testAddr+`","private_key":"`+testPK+`","type":"zaddr","seed":{"HDSeed":"00ff","path":"m/32'/1'/0'"}}]`,
	)), true, 1)
	require.NoError(t, err)
	defer batch.Destroy()

	cards := NewFormatter(512).Cards(batch)
	require.Len(t, cards, 1)
	c := cards[0]

	assert.Equal(t, 0, c.Index)
	assert.Equal(t, "zaddr", c.Kind)
	assert.Equal(t, "m/32'/1'/0'", c.Path)
	assert.Equal(t, Wrap(testAddr, AddressLineLength), c.AddressLines)
	assert.Equal(t, Wrap(testPK, PrivateKeyLineLength), string(c.PrivateKeyLines.Bytes()))

	addrPNG, err := base64.StdEncoding.DecodeString(c.AddressQR)
	require.NoError(t, err)
	assert.Equal(t, testAddr, decodeQR(t, addrPNG))

	pkPNG, err := base64.StdEncoding.DecodeString(string(c.PrivateKeyQR.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, testPK, decodeQR(t, pkPNG))

	lines := c.PrivateKeyLines.Bytes()
	DestroyCards(cards)
	for _, b := range lines {
		assert.Zero(t, b)
	}
}
