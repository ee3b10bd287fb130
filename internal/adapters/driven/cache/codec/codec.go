// Package codec encodes cache values to bytes for byte-oriented backends.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted by ByName.
const (
	NameMsgpack = "msgpack"
	NameJSON    = "json"
	NameCBOR    = "cbor"
)

// Codec encodes and decodes arbitrary values.
type Codec interface {
	Name() string
	Encode(v any) ([]byte, error)
	Decode(b []byte) (any, error)
}

// ByName returns the codec with the given name. An empty name selects msgpack.
func ByName(name string) (Codec, error) {
	switch name {
	case "", NameMsgpack:
		return Msgpack{}, nil
	case NameJSON:
		return JSON{}, nil
	case NameCBOR:
		return NewCBOR()
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}

// Msgpack serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type Msgpack struct{}

func (Msgpack) Name() string { return NameMsgpack }

func (Msgpack) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack) Decode(b []byte) (any, error) {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(bytes.NewReader(b))
	dec.UseLooseInterfaceDecoding(true)
	return dec.DecodeInterface()
}

// JSON serializes values using encoding/json.
type JSON struct{}

func (JSON) Name() string { return NameJSON }

func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Decode(b []byte) (any, error) {
	var v any
	err := json.Unmarshal(b, &v)
	return v, err
}

// CBOR serializes values using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR constructs a CBOR codec with preferred encoding options.
// Maps decode to map[string]any so decoded values stay JSON-compatible.
func NewCBOR() (CBOR, error) {
	eo := cbor.PreferredUnsortedEncOptions()
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

func (CBOR) Name() string { return NameCBOR }

func (c CBOR) Encode(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c CBOR) Decode(b []byte) (any, error) {
	var v any
	err := c.dec.Unmarshal(b, &v)
	return v, err
}
