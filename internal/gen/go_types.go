package gen

import (
	"dhallgen/internal/errors"
	"dhallgen/internal/native"
)

const bigImportPath = "math/big"

// goType renders a native type as Go source. usesBig is set when the type
// needs math/big.
func goType(t native.Type, usesBig *bool) (string, error) {
	switch t.Kind {
	case native.KindBool:
		return "bool", nil
	case native.KindFloat64:
		return "float64", nil
	case native.KindSignedBigInt, native.KindUnsignedBigInt:
		*usesBig = true
		return "*big.Int", nil
	case native.KindStr:
		return "string", nil
	case native.KindList, native.KindOptional:
		if t.Elem == nil {
			return "", errors.Newf("%s without element type", t.Kind)
		}

		elem, err := goType(*t.Elem, usesBig)
		if err != nil {
			return "", err
		}

		if t.Kind == native.KindList {
			return "[]" + elem, nil
		}

		return "*" + elem, nil
	default:
		return "", errors.Newf("cannot print native type %s", t)
	}
}
