package convert

import (
	"context"

	"github.com/localsub/localsub/adapter"
)

// RegexValidator pre-validates filter patterns through the engine before a
// conversion is submitted. It keeps no state and may be shared.
type RegexValidator struct {
	engine adapter.Engine
}

func NewRegexValidator(engine adapter.Engine) *RegexValidator {
	return &RegexValidator{engine: engine}
}

// Validate reports whether pattern compiles on the engine side. The empty
// pattern means "no filter" and is valid without a round trip. A compile
// rejection and a transport failure are indistinguishable here: both report
// the pattern as invalid.
func (v *RegexValidator) Validate(ctx context.Context, pattern string) bool {
	if pattern == "" {
		return true
	}
	valid, err := v.engine.ValidateRegex(ctx, pattern)
	if err != nil {
		return false
	}
	return valid
}
