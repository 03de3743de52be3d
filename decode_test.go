// FILE: lixenwraith/argbind/decode_test.go
package argbind

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLevel parses itself from text
type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
	levelError
)

func (l *logLevel) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "info":
		*l = levelInfo
	case "warn":
		*l = levelWarn
	case "error":
		*l = levelError
	default:
		return fmt.Errorf("unknown level %q", text)
	}
	return nil
}

type point struct{ X, Y int }

func TestDescriptorConverter(t *testing.T) {
	c := newDescriptorConverter()

	t.Run("PassThrough", func(t *testing.T) {
		res, err := c.TryConvert("  raw value ", TargetOf[string](), NoFlags)
		assert.Equal(t, []any{"  raw value "}, interfacesOf(t, res, err))

		res, err = c.TryConvert("", TargetOf[string](), NoFlags)
		assert.Equal(t, []any{""}, interfacesOf(t, res, err))

		res, err = c.TryConvert("42", TargetOf[any](), NoFlags)
		assert.Equal(t, []any{"42"}, interfacesOf(t, res, err))
	})

	t.Run("VectorTargetsConvertTheElement", func(t *testing.T) {
		res, err := c.TryConvert("7", TargetOf[[]int](), NoFlags)
		assert.Equal(t, []any{7}, interfacesOf(t, res, err))
	})

	t.Run("Primitives", func(t *testing.T) {
		tests := []struct {
			name   string
			value  string
			target TargetType
			want   any
		}{
			{"int", "42", TargetOf[int](), 42},
			{"negative", "-17", TargetOf[int64](), int64(-17)},
			{"uint", "65535", TargetOf[uint16](), uint16(65535)},
			{"float", "2.5", TargetOf[float64](), 2.5},
			{"bool", "true", TargetOf[bool](), true},
			{"bool numeric", "0", TargetOf[bool](), false},
			{"named string", "example.org", TargetOf[hostname](), hostname("example.org")},
			{"duration", "1m30s", TargetOf[time.Duration](), 90 * time.Second},
			{"text unmarshaler", "WARN", TargetOf[logLevel](), levelWarn},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, err := c.TryConvert(tt.value, tt.target, NoFlags)
				assert.Equal(t, []any{tt.want}, interfacesOf(t, res, err))
			})
		}
	})

	t.Run("Time", func(t *testing.T) {
		res, err := c.TryConvert("2024-03-01T10:00:00Z", TargetOf[time.Time](), NoFlags)
		got := interfacesOf(t, res, err)
		require.Len(t, got, 1)
		assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(got[0].(time.Time)))
	})

	t.Run("NetworkTypes", func(t *testing.T) {
		res, err := c.TryConvert("192.168.1.10", TargetOf[net.IP](), NoFlags)
		got := interfacesOf(t, res, err)
		assert.True(t, net.ParseIP("192.168.1.10").Equal(got[0].(net.IP)))

		res, err = c.TryConvert("10.0.0.0/8", TargetOf[net.IPNet](), NoFlags)
		got = interfacesOf(t, res, err)
		ipnet := got[0].(net.IPNet)
		assert.Equal(t, "10.0.0.0/8", ipnet.String())

		res, err = c.TryConvert("192.168.0.0/16", TargetOf[*net.IPNet](), NoFlags)
		got = interfacesOf(t, res, err)
		assert.Equal(t, "192.168.0.0/16", got[0].(*net.IPNet).String())

		res, err = c.TryConvert("https://example.org/path?q=1", TargetOf[*url.URL](), NoFlags)
		got = interfacesOf(t, res, err)
		u := got[0].(*url.URL)
		assert.Equal(t, "example.org", u.Host)
		assert.Equal(t, "/path", u.Path)
	})

	t.Run("Declines", func(t *testing.T) {
		tests := []struct {
			name   string
			value  string
			target TargetType
		}{
			{"not a number", "x", TargetOf[int]()},
			{"blank number", "   ", TargetOf[int]()},
			{"empty bool", "", TargetOf[bool]()},
			{"overflow", "256", TargetOf[uint8]()},
			{"bad duration", "soon", TargetOf[time.Duration]()},
			{"bad ip", "999.1.1.1", TargetOf[net.IP]()},
			{"bad cidr", "10.0.0.0", TargetOf[net.IPNet]()},
			{"oversized ip", strings.Repeat("1", 46), TargetOf[net.IP]()},
			{"bad url", "http://[::1", TargetOf[url.URL]()},
			{"bad time", "yesterday", TargetOf[time.Time]()},
			{"unknown level", "verbose", TargetOf[logLevel]()},
			{"struct", "1,2", TargetOf[point]()},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, err := c.TryConvert(tt.value, tt.target, NoFlags)
				require.NoError(t, err, "descriptor failures must decline, not abort")
				assert.False(t, res.Ok())
			})
		}
	})

	t.Run("IgnoresFlags", func(t *testing.T) {
		res, err := c.TryConvert("5", TargetOf[int](), ReadFileContent|AssumeHexadecimal)
		assert.Equal(t, []any{5}, interfacesOf(t, res, err))
	})
}
