package constant

const (
	Version = "0.3.0"

	// DefaultTimeout is attached to every full conversion request, in seconds.
	DefaultTimeout = 30

	// DefaultUserAgent is sent by the engine when fetching subscriptions
	// unless the profile overrides it.
	DefaultUserAgent = "clash-verge/v2.0.0"
)
