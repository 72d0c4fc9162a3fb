package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// validatePrivateKey accepts a hex encoded secp256k1 private key, with or without the 0x
// prefix.
func validatePrivateKey(fl validator.FieldLevel) bool {
	key, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
	return err == nil
}

// validateNonZeroAddress rejects the zero address, which is what an empty or malformed
// address string decodes to.
func validateNonZeroAddress(fl validator.FieldLevel) bool {
	switch addr := fl.Field().Interface().(type) {
	case common.Address:
		return addr != (common.Address{})
	case string:
		return common.IsHexAddress(addr) && common.HexToAddress(addr) != (common.Address{})
	default:
		return false
	}
}

// Validator returns a singleton that can be used to validate various objects
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("private_key", validatePrivateKey); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		if err := v.RegisterValidation("l1_address", validateNonZeroAddress); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		// Addresses are validated by their hex representation
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if addr, ok := field.Interface().(common.Address); ok {
				return addr.Hex()
			}
			panic("not a common.Address")
		}, common.Address{})
	})
	return v
}
