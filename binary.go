package argbind

import (
	"encoding/base64"
	"encoding/hex"
	"reflect"
	"strings"
)

// binaryConverter decodes byte and byte-vector targets from base64 or hex text.
type binaryConverter struct{}

func (c *binaryConverter) Kind() ConverterKind { return KindBinary }

func (c *binaryConverter) TryConvert(value string, target TargetType, flags ArgumentFlags) (Result, error) {
	scalar := target.Scalar()
	if !isByte(scalar) {
		return Unsuccessful, nil
	}
	// Path-valued arguments belong to the directory and file-content converters
	if flags.Has(ReadFileContent) || flags.Has(ExistingDirectory) {
		return Unsuccessful, nil
	}

	var data []byte
	var err error
	switch {
	case flags.Has(AssumeBase64):
		data, err = base64.StdEncoding.DecodeString(value)
	case flags.Has(AssumeHexadecimal) || hasHexPrefix(value):
		data, err = decodeHex(value)
	default:
		data, err = base64.StdEncoding.DecodeString(value)
	}
	// No fallback from a failed hex decode to base64
	if err != nil {
		return Unsuccessful, nil
	}

	values := make([]reflect.Value, len(data))
	for i, b := range data {
		values[i] = boxAs(b, scalar)
	}
	return Successful(values...), nil
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && strings.EqualFold(s[:2], "0x")
}

// decodeHex accepts upper and lower case digits and an optional 0x/0X prefix
func decodeHex(s string) ([]byte, error) {
	if hasHexPrefix(s) {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
