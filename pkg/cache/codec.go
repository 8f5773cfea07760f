package cache

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted in Config.Codec.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Codec encodes and decodes cached values. The encoding must be stable so
// that cached query results and database-fetched results are
// interchangeable to callers.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, dst any) error
}

// jsonCodec is the default: self-describing and debuggable from redis-cli.
type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Decode(data []byte, dst any) error { return json.Unmarshal(data, dst) }

// msgpackCodec trades readability for compactness. Mind struct tag
// differences vs JSON; use `msgpack:"field"` tags for explicit control.
type msgpackCodec struct{}

func (msgpackCodec) Encode(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Decode(data []byte, dst any) error { return msgpack.Unmarshal(data, dst) }

func codecFor(name string) Codec {
	if name == CodecMsgpack {
		return msgpackCodec{}
	}
	return jsonCodec{}
}
