package encoder

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode   cbor.EncMode
	decMode   cbor.DecMode
	initModes sync.Once
)

// Records use the core deterministic encoding, so equal values always encode to equal bytes.
// Decoding rejects duplicate map keys and indefinite lengths, neither of which Marshal
// produces.
func modes() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		MaxNestedLevels:  16,
		MaxArrayElements: 1 << 20,
		MaxMapPairs:      1 << 16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

func Marshal(v any) ([]byte, error) {
	initModes.Do(modes)
	return encMode.Marshal(v)
}

func Unmarshal(b []byte, v any) error {
	initModes.Do(modes)
	return decMode.Unmarshal(b, v)
}

// Decode returns the value encoded in b.
func Decode[T any](b []byte) (T, error) {
	var v T
	err := Unmarshal(b, &v)
	return v, err
}
