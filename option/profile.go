package option

import "github.com/sagernet/sing/common/json"

type _Profile struct {
	Subscription         string `json:"subscription,omitempty"`
	Preset               string `json:"preset,omitempty"`
	CustomIniURL         string `json:"custom_ini_url,omitempty"`
	CustomIniContent     string `json:"custom_ini_content,omitempty"`
	IncludeRegex         string `json:"include_regex,omitempty"`
	ExcludeRegex         string `json:"exclude_regex,omitempty"`
	RenamePattern        string `json:"rename_pattern,omitempty"`
	RenameReplacement    string `json:"rename_replacement,omitempty"`
	CustomUserAgent      string `json:"custom_user_agent,omitempty"`
	EnableTun            bool   `json:"enable_tun,omitempty"`
	EnableUDP            bool   `json:"enable_udp"`
	EnableTFO            bool   `json:"enable_tfo,omitempty"`
	SkipCertVerify       bool   `json:"skip_cert_verify,omitempty"`
	AllowLan             bool   `json:"allow_lan,omitempty"`
	RuleProviderProxy    string `json:"rule_provider_proxy,omitempty"`
	RuleProviderPathOmit bool   `json:"rule_provider_path_omit,omitempty"`
}

// Profile holds the mutable session options a conversion request is derived
// from. It lives for the session only; a reset restores DefaultProfile.
type Profile _Profile

func DefaultProfile() Profile {
	return Profile{
		EnableUDP: true,
	}
}

func (p *Profile) UnmarshalJSON(content []byte) error {
	*p = DefaultProfile()
	return json.UnmarshalDisallowUnknownFields(content, (*_Profile)(p))
}
