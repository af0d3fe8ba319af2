package token

import (
	"fmt"
	"strings"

	"github.com/hupe1980/ppjoin/model"
)

// Normalizer maps a raw field value to the value that is interned as a token.
// It must return a comparable value.
type Normalizer func(model.Value) model.Value

// Identity leaves values untouched.
func Identity(v model.Value) model.Value { return v }

// LowercaseText renders a value as text and lowercases it.
// nil stays nil so that missing fields do not collapse into the string "<nil>".
func LowercaseText(v model.Value) model.Value {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return strings.ToLower(s)
	default:
		return strings.ToLower(fmt.Sprint(v))
	}
}
