package option

import "github.com/sagernet/sing/common/json"

type _Options struct {
	Log     *LogOptions   `json:"log,omitempty"`
	Engine  EngineOptions `json:"engine"`
	API     *APIOptions   `json:"api,omitempty"`
	Profile *Profile      `json:"profile,omitempty"`
}

type Options _Options

func (o *Options) UnmarshalJSON(content []byte) error {
	return json.UnmarshalDisallowUnknownFields(content, (*_Options)(o))
}

type LogOptions struct {
	Disabled     bool   `json:"disabled,omitempty"`
	Level        string `json:"level,omitempty"`
	Output       string `json:"output,omitempty"`
	Timestamp    bool   `json:"timestamp,omitempty"`
	DisableColor bool   `json:"-"`
}

// EngineOptions locates the remote conversion engine. Timeout is the HTTP
// client ceiling in seconds and must exceed the per-request timeout_secs the
// engine is asked to honor.
type EngineOptions struct {
	URL     string `json:"url"`
	Timeout uint64 `json:"timeout,omitempty"`
}

type APIOptions struct {
	Listen string `json:"listen"`
	Secret string `json:"secret,omitempty"`
}
