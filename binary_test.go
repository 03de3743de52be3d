// FILE: lixenwraith/argbind/binary_test.go
package argbind

import (
	"encoding/base64"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type octet byte

func bytesOf(t *testing.T, res Result, err error) []byte {
	t.Helper()
	out := []byte{}
	for _, v := range interfacesOf(t, res, err) {
		out = append(out, v.(byte))
	}
	return out
}

func TestBinaryConverter(t *testing.T) {
	c := &binaryConverter{}
	blob := TargetOf[[]byte]()

	t.Run("DeclinesNonByteTargets", func(t *testing.T) {
		for _, target := range []TargetType{TargetOf[string](), TargetOf[[]int](), TargetOf[int8]()} {
			res, err := c.TryConvert("AQID", target, AssumeBase64)
			require.NoError(t, err)
			assert.False(t, res.Ok(), target.String())
		}
	})

	t.Run("DeclinesPathFlags", func(t *testing.T) {
		for _, flags := range []ArgumentFlags{ReadFileContent, ExistingDirectory, AssumeHexadecimal | ReadFileContent} {
			res, err := c.TryConvert("keyfile1", blob, flags)
			require.NoError(t, err)
			assert.False(t, res.Ok(), flags.String())
		}
	})

	t.Run("UnflaggedDefaultsToBase64", func(t *testing.T) {
		res, err := c.TryConvert("AQID", blob, NoFlags)
		assert.Equal(t, []byte{1, 2, 3}, bytesOf(t, res, err))
	})

	t.Run("UnflaggedHexPrefixSniffing", func(t *testing.T) {
		res, err := c.TryConvert("0x0A0b", blob, NoFlags)
		assert.Equal(t, []byte{0x0a, 0x0b}, bytesOf(t, res, err))

		res, err = c.TryConvert("0XFF", blob, NoFlags)
		assert.Equal(t, []byte{0xff}, bytesOf(t, res, err))
	})

	t.Run("AssumeHexadecimalWithoutPrefix", func(t *testing.T) {
		res, err := c.TryConvert("deadBEEF", blob, AssumeHexadecimal)
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bytesOf(t, res, err))
	})

	t.Run("AssumeBase64WinsOverHexPrefix", func(t *testing.T) {
		want, err := base64.StdEncoding.DecodeString("0xAB")
		require.NoError(t, err)

		res, err := c.TryConvert("0xAB", blob, AssumeBase64)
		assert.Equal(t, want, bytesOf(t, res, err))
		assert.Len(t, want, 3)

		res, err = c.TryConvert("0xAB", blob, AssumeBase64|AssumeHexadecimal)
		assert.Equal(t, want, bytesOf(t, res, err))
	})

	t.Run("MalformedInputDeclines", func(t *testing.T) {
		cases := []struct {
			value string
			flags ArgumentFlags
		}{
			{"0x123", NoFlags},         // odd length
			{"0xZZ", NoFlags},          // not hex
			{"abc", AssumeHexadecimal}, // odd length
			{"!!!!", NoFlags},          // not base64
			{"AQI", AssumeBase64},      // missing padding
			{"0xQUJD", NoFlags},        // valid base64 after the prefix, no fallback
		}
		for _, tc := range cases {
			res, err := c.TryConvert(tc.value, blob, tc.flags)
			require.NoError(t, err, tc.value)
			assert.False(t, res.Ok(), tc.value)
		}
	})

	t.Run("ScalarByteReusesDecode", func(t *testing.T) {
		res, err := c.TryConvert("0x2a", TargetOf[byte](), NoFlags)
		assert.Equal(t, []byte{42}, bytesOf(t, res, err))

		res, err = c.TryConvert("AQID", TargetOf[byte](), NoFlags)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Len(), "length check belongs to the binder")
	})

	t.Run("NamedByteType", func(t *testing.T) {
		res, err := c.TryConvert("0x0102", TargetOf[[]octet](), NoFlags)
		require.NoError(t, err)
		require.True(t, res.Ok())
		assert.Equal(t, []any{octet(1), octet(2)}, res.Interfaces())
	})

	t.Run("EmptyValueIsEmptyBlob", func(t *testing.T) {
		res, err := c.TryConvert("", blob, NoFlags)
		require.NoError(t, err)
		assert.True(t, res.Ok())
		assert.Equal(t, 0, res.Len())
	})
}

func TestBinaryConverterRoundTrip(t *testing.T) {
	c := &binaryConverter{}
	blob := TargetOf[[]byte]()
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 64; n++ {
		data := make([]byte, n)
		rng.Read(data)

		res, err := c.TryConvert("0x"+hex.EncodeToString(data), blob, NoFlags)
		assert.Equal(t, data, bytesOf(t, res, err), "hex round trip of %d bytes", n)

		res, err = c.TryConvert(hex.EncodeToString(data), blob, AssumeHexadecimal)
		assert.Equal(t, data, bytesOf(t, res, err), "unprefixed hex round trip of %d bytes", n)

		res, err = c.TryConvert(base64.StdEncoding.EncodeToString(data), blob, AssumeBase64)
		assert.Equal(t, data, bytesOf(t, res, err), "base64 round trip of %d bytes", n)
	}
}

// TestBinaryConverterMatchesReferenceBase64 checks unflagged values against encoding/base64
func TestBinaryConverterMatchesReferenceBase64(t *testing.T) {
	c := &binaryConverter{}
	blob := TargetOf[[]byte]()
	rng := rand.New(rand.NewSource(7))
	alphabet := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/=-_!"

	for i := 0; i < 500; i++ {
		buf := make([]byte, rng.Intn(12))
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		value := string(buf)
		if hasHexPrefix(value) {
			continue
		}

		want, refErr := base64.StdEncoding.DecodeString(value)
		res, err := c.TryConvert(value, blob, NoFlags)
		require.NoError(t, err)
		if refErr != nil {
			assert.False(t, res.Ok(), value)
			continue
		}
		assert.Equal(t, want, bytesOf(t, res, err), value)
	}
}
