package convert

import (
	C "github.com/localsub/localsub/constant"
	"github.com/localsub/localsub/option"
)

// BuildConvertRequest derives the wire request for a full conversion from the
// current profile. It is a pure transform: subscription text is copied
// verbatim, optional fields stay empty (and are therefore absent on the
// wire), and the remote-config URL goes through preset resolution instead of
// being copied from the profile.
func BuildConvertRequest(profile option.Profile, presets []option.PresetConfig) option.ConvertRequest {
	return option.ConvertRequest{
		Subscription:         profile.Subscription,
		IniURL:               ResolveRemoteConfig(profile.Preset, profile.CustomIniURL, presets),
		IniContent:           profile.CustomIniContent,
		IncludeRegex:         profile.IncludeRegex,
		ExcludeRegex:         profile.ExcludeRegex,
		RenamePattern:        profile.RenamePattern,
		RenameReplacement:    profile.RenameReplacement,
		TimeoutSecs:          C.DefaultTimeout,
		EnableTun:            profile.EnableTun,
		CustomUserAgent:      profile.CustomUserAgent,
		EnableUDP:            profile.EnableUDP,
		EnableTFO:            profile.EnableTFO,
		SkipCertVerify:       profile.SkipCertVerify,
		AllowLan:             profile.AllowLan,
		RuleProviderProxy:    profile.RuleProviderProxy,
		RuleProviderPathOmit: profile.RuleProviderPathOmit,
	}
}

// EffectiveUserAgent reports the user agent the engine fetches the
// subscription with: the profile override when set, the engine default
// otherwise. Requests still omit custom_user_agent when unset so the
// default is applied engine-side.
func EffectiveUserAgent(profile option.Profile) string {
	if profile.CustomUserAgent != "" {
		return profile.CustomUserAgent
	}
	return C.DefaultUserAgent
}

// BuildParseRequest derives the preview slice: only the fields that matter
// for parsing. Rename, TUN and rule-provider settings never reach the
// preview operation since no configuration is materialized.
func BuildParseRequest(profile option.Profile) option.ParseRequest {
	return option.ParseRequest{
		Content:         profile.Subscription,
		IncludeRegex:    profile.IncludeRegex,
		ExcludeRegex:    profile.ExcludeRegex,
		CustomUserAgent: profile.CustomUserAgent,
		TimeoutSecs:     C.DefaultTimeout,
	}
}
