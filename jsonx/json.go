package jsonx

import (
	"io"
	"math"
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Struct fields are written in declaration order with no insignificant whitespace. Record
// hashes depend on this output, so the config must not change for the lifetime of a chain.
//
// TagKey is spelled out so indented encoders derived from this config get their own cache
// entry inside jsoniter and keep the float extension.
var jsonx = newConfig()

func newConfig() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		TagKey:                 "json",
	}.Froze()
	api.RegisterExtension(&floatExtension{})
	return api
}

// floatExtension makes encoding total over float64: NaN and ±Inf are written as null
// instead of failing the whole record.
type floatExtension struct {
	jsoniter.DummyExtension
}

func (e *floatExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if typ.Kind() == reflect.Float64 {
		return &float64Encoder{}
	}
	return nil
}

type float64Encoder struct{}

func (*float64Encoder) IsEmpty(ptr unsafe.Pointer) bool {
	return *(*float64)(ptr) == 0
}

func (*float64Encoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	v := *(*float64)(ptr)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		stream.WriteNil()
		return
	}
	stream.WriteFloat64(v)
}

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

// NewEncoder writes one JSON document per Encode call, indented by two spaces.
func NewEncoder(w io.Writer) *jsoniter.Encoder {
	enc := jsonx.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}
