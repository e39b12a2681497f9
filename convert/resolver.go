package convert

import "github.com/localsub/localsub/option"

// ResolveRemoteConfig resolves the effective remote-config URL. A selected
// preset always wins over a typed URL, even when both are populated; an
// unknown preset name resolves to "" rather than an error so the engine
// falls back to its default rules.
func ResolveRemoteConfig(presetName string, customURL string, presets []option.PresetConfig) string {
	if presetName != "" {
		for _, preset := range presets {
			if preset.Name == presetName {
				return preset.URL
			}
		}
		return ""
	}
	return customURL
}
