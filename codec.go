package bigint

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder    = BigInteger{}
	_ msgpack.CustomDecoder    = (*BigInteger)(nil)
	_ encoding.TextMarshaler   = BigInteger{}
	_ encoding.TextUnmarshaler = (*BigInteger)(nil)
	_ json.Marshaler           = BigInteger{}
	_ json.Unmarshaler         = (*BigInteger)(nil)
	_ fmt.Stringer             = BigInteger{}
)

// EncodeMsgpack writes x as a msgpack bin holding its big-endian
// two's-complement bytes.
func (x BigInteger) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(x.Bytes(false))
}

// DecodeMsgpack reads a value written by EncodeMsgpack. A nil bin decodes
// as 0.
func (x *BigInteger) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return fmt.Errorf("bigint: decoding msgpack: %w", err)
	}
	*x = FromBytes(b, false)
	return nil
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (x BigInteger) MarshalText() ([]byte, error) {
	return x.appendDecimal(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. x is left unchanged on
// error.
func (x *BigInteger) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a bare JSON number.
func (x BigInteger) MarshalJSON() ([]byte, error) {
	return x.MarshalText()
}

// UnmarshalJSON accepts a JSON number or a string holding one. null leaves x
// unchanged.
func (x *BigInteger) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return x.UnmarshalText(bytes.TrimSpace(data))
}
