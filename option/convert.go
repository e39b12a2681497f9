package option

import "math"

// ConvertRequest is the wire-level snapshot of a profile at submit time.
// Optional string fields are omitted entirely when empty: absence tells the
// engine to use its default, an empty string is never sent. Boolean switches
// are always present.
type ConvertRequest struct {
	Subscription         string `json:"subscription"`
	IniURL               string `json:"ini_url,omitempty"`
	IniContent           string `json:"ini_content,omitempty"`
	IncludeRegex         string `json:"include_regex,omitempty"`
	ExcludeRegex         string `json:"exclude_regex,omitempty"`
	RenamePattern        string `json:"rename_pattern,omitempty"`
	RenameReplacement    string `json:"rename_replacement,omitempty"`
	TimeoutSecs          uint64 `json:"timeout_secs"`
	EnableTun            bool   `json:"enable_tun"`
	CustomUserAgent      string `json:"custom_user_agent,omitempty"`
	EnableUDP            bool   `json:"enable_udp"`
	EnableTFO            bool   `json:"enable_tfo"`
	SkipCertVerify       bool   `json:"skip_cert_verify"`
	AllowLan             bool   `json:"allow_lan"`
	RuleProviderProxy    string `json:"rule_provider_proxy,omitempty"`
	RuleProviderPathOmit bool   `json:"rule_provider_path_omit"`
}

// ParseRequest is the preview slice of a conversion request. It carries only
// the fields relevant to parsing; rename, TUN and rule-provider settings have
// no representation here.
type ParseRequest struct {
	Content         string `json:"content"`
	IncludeRegex    string `json:"include_regex,omitempty"`
	ExcludeRegex    string `json:"exclude_regex,omitempty"`
	CustomUserAgent string `json:"custom_user_agent,omitempty"`
	TimeoutSecs     uint64 `json:"timeout_secs"`
}

type ConvertResult struct {
	YAML             string            `json:"yaml"`
	NodeCount        int               `json:"node_count"`
	FilteredCount    int               `json:"filtered_count"`
	GroupCount       int               `json:"group_count"`
	RuleCount        int               `json:"rule_count"`
	Warnings         []string          `json:"warnings"`
	SubscriptionInfo *SubscriptionInfo `json:"subscription_info,omitempty"`
}

type ParseResult struct {
	Nodes            []NodeInfo        `json:"nodes"`
	SubscriptionInfo *SubscriptionInfo `json:"subscription_info,omitempty"`
}

// NodeInfo is the lightweight node projection returned by the preview
// operation, in subscription order, not deduplicated.
type NodeInfo struct {
	Name     string `json:"name"`
	Protocol string `json:"protocol"`
	Server   string `json:"server"`
	Port     uint16 `json:"port"`
}

type PresetConfig struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type RegexRequest struct {
	Pattern string `json:"pattern"`
}

// SubscriptionInfo is the quota snapshot parsed by the engine from the
// subscription-userinfo header. All counters are bytes; Expire is Unix
// seconds, 0 meaning the subscription never expires.
type SubscriptionInfo struct {
	Upload   *uint64 `json:"upload,omitempty"`
	Download *uint64 `json:"download,omitempty"`
	Total    *uint64 `json:"total,omitempty"`
	Expire   *int64  `json:"expire,omitempty"`
}

// HasQuota reports whether any quota metadata is present. When both total and
// expire are absent the provider sent nothing usable and callers must not
// render a quota indicator at all.
func (i *SubscriptionInfo) HasQuota() bool {
	if i == nil {
		return false
	}
	return i.Total != nil || i.Expire != nil
}

func (i *SubscriptionInfo) UsedBytes() uint64 {
	if i == nil {
		return 0
	}
	var used uint64
	if i.Upload != nil {
		used += *i.Upload
	}
	if i.Download != nil {
		used += *i.Download
	}
	return used
}

// UsagePercent returns the used share of the quota rounded to whole percent
// and clamped to [0, 100]. It is undefined (ok == false) unless a positive
// total is known.
func (i *SubscriptionInfo) UsagePercent() (int, bool) {
	if i == nil || i.Total == nil || *i.Total == 0 {
		return 0, false
	}
	percent := int(math.Round(100 * float64(i.UsedBytes()) / float64(*i.Total)))
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	return percent, true
}
