// FILE: lixenwraith/argbind/decode.go
package argbind

import (
	"encoding"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// descriptorConverter is the catch-all: string and empty-interface targets take the
// raw value, everything else goes through mapstructure's weak decoding and hooks.
type descriptorConverter struct {
	hook mapstructure.DecodeHookFunc
}

func newDescriptorConverter() *descriptorConverter {
	return &descriptorConverter{hook: getDecodeHook()}
}

func (c *descriptorConverter) Kind() ConverterKind { return KindDescriptor }

func (c *descriptorConverter) TryConvert(value string, target TargetType, _ ArgumentFlags) (Result, error) {
	scalar := target.Scalar()
	if isPassThrough(scalar) {
		return Successful(boxAs(value, scalar)), nil
	}
	if scalar.Kind() != reflect.String && strings.TrimSpace(value) == "" {
		return Unsuccessful, nil
	}

	out := reflect.New(scalar)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		WeaklyTypedInput: true,
		DecodeHook:       c.hook,
	})
	if err != nil {
		return Unsuccessful, nil
	}
	if err := decoder.Decode(value); err != nil {
		return Unsuccessful, nil
	}
	return Successful(out.Elem()), nil
}

// getDecodeHook returns the composite decode hook for all type conversions
func getDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),

		// Named types that parse themselves, e.g. enums
		stringToTextUnmarshalerHookFunc(),
	)
}

// Longest textual forms accepted before parsing is attempted
const (
	maxIPText   = 45 // IPv6 with embedded IPv4
	maxCIDRText = 49
	maxURLText  = 2048
)

var (
	netIPType    = reflect.TypeOf(net.IP{})
	netIPNetType = reflect.TypeOf(net.IPNet{})
	urlType      = reflect.TypeOf(url.URL{})
)

// stringHook builds a hook for a string-parsed type. Pointer targets receive the pointer
// that parse returns, value targets the dereferenced value.
func stringHook(want reflect.Type, limit int, parse func(string) (any, error)) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		if t != want && !(isPtr && t.Elem() == want) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > limit {
			return nil, fmt.Errorf("%s value of %d bytes exceeds %d", want, len(str), limit)
		}
		v, err := parse(str)
		if err != nil {
			return nil, err
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && !isPtr {
			return rv.Elem().Interface(), nil
		}
		return v, nil
	}
}

// stringToNetIPHookFunc parses net.IP in dotted or colon form
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return stringHook(netIPType, maxIPText, func(s string) (any, error) {
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, fmt.Errorf("not an IP address: %q", truncateValue(s))
		}
		return ip, nil
	})
}

// stringToNetIPNetHookFunc parses CIDR notation into net.IPNet or *net.IPNet
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return stringHook(netIPNetType, maxCIDRText, func(s string) (any, error) {
		_, network, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("not a CIDR network: %w", err)
		}
		return network, nil
	})
}

// stringToURLHookFunc parses url.URL or *url.URL
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return stringHook(urlType, maxURLText, func(s string) (any, error) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("not a URL: %w", err)
		}
		return u, nil
	})
}

// stringToTextUnmarshalerHookFunc decodes into any type whose pointer implements
// encoding.TextUnmarshaler. The value, not the pointer, is handed back to mapstructure.
func stringToTextUnmarshalerHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t.Kind() == reflect.Ptr || !reflect.PointerTo(t).Implements(textUnmarshalerType) {
			return data, nil
		}

		ptr := reflect.New(t)
		str := reflect.ValueOf(data).String()
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(str)); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
}
