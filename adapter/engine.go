package adapter

import (
	"context"

	"github.com/localsub/localsub/option"
)

// Engine is the remote conversion engine contract. All four operations are
// one-shot request/response; none of them stream or retry.
type Engine interface {
	// Convert performs a full subscription conversion and returns the
	// generated configuration with its counters.
	Convert(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error)

	// ParseNodes parses subscription content without generating a
	// configuration, returning node metadata for preview.
	ParseNodes(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error)

	// ValidateRegex asks the engine whether pattern compiles. A rejection of
	// any kind reports the pattern as invalid.
	ValidateRegex(ctx context.Context, pattern string) (bool, error)

	// PresetConfigs fetches the named remote-config presets.
	PresetConfigs(ctx context.Context) ([]option.PresetConfig, error)
}
