// Package convert orchestrates the client side of subscription conversion:
// it owns the session options, derives wire requests from them, drives the
// remote engine and keeps the lifecycle state the UI renders from.
package convert

import (
	"context"
	"strings"
	"sync"

	"github.com/localsub/localsub/adapter"
	"github.com/localsub/localsub/log"
	"github.com/localsub/localsub/option"

	E "github.com/sagernet/sing/common/exceptions"
)

// ErrEmptySubscription is the validation failure raised before any remote
// call when the subscription text is empty or whitespace.
var ErrEmptySubscription = E.New("subscription content is empty")

// Session is the conversion state machine. The converting and previewing
// flags are advisory signals for the UI, not locks: overlapping operations
// are tolerated and the last settlement wins. A Reset bumps the generation
// counter, which invalidates every operation still in flight; their
// settlements are discarded wholesale so a late response cannot resurrect
// state the user already dropped.
type Session struct {
	engine adapter.Engine
	logger log.ContextLogger

	access       sync.Mutex
	generation   uint32
	profile      option.Profile
	presets      []option.PresetConfig
	converting   bool
	previewing   bool
	result       *option.ConvertResult
	previewNodes []option.NodeInfo
	previewInfo  *option.SubscriptionInfo
	lastError    string
}

func NewSession(engine adapter.Engine, logger log.ContextLogger) *Session {
	if logger == nil {
		logger = log.NewNOPLogger()
	}
	return &Session{
		engine:  engine,
		logger:  logger,
		profile: option.DefaultProfile(),
	}
}

// LoadPresets fetches the preset list once. Failure is not fatal: the list
// stays empty and manual remote-config URLs keep working.
func (s *Session) LoadPresets(ctx context.Context) error {
	presets, err := s.engine.PresetConfigs(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load presets: ", err)
		return err
	}
	s.access.Lock()
	s.presets = presets
	s.access.Unlock()
	s.logger.DebugContext(ctx, "loaded ", len(presets), " presets")
	return nil
}

func (s *Session) Presets() []option.PresetConfig {
	s.access.Lock()
	defer s.access.Unlock()
	return s.presets
}

func (s *Session) Profile() option.Profile {
	s.access.Lock()
	defer s.access.Unlock()
	return s.profile
}

func (s *Session) SetProfile(profile option.Profile) {
	s.access.Lock()
	defer s.access.Unlock()
	s.profile = profile
}

// Convert submits a full conversion. It blocks until the engine settles; the
// converting flag is visible to other goroutines meanwhile.
func (s *Session) Convert(ctx context.Context) (*option.ConvertResult, error) {
	ctx = log.ContextWithNewID(ctx)
	s.access.Lock()
	if strings.TrimSpace(s.profile.Subscription) == "" {
		s.lastError = ErrEmptySubscription.Error()
		s.access.Unlock()
		return nil, ErrEmptySubscription
	}
	s.result = nil
	s.previewNodes = nil
	s.previewInfo = nil
	s.lastError = ""
	s.converting = true
	generation := s.generation
	request := BuildConvertRequest(s.profile, s.presets)
	s.access.Unlock()

	s.logger.InfoContext(ctx, "convert: ", len(request.Subscription), " bytes of subscription text")
	result, err := s.engine.Convert(ctx, request)

	s.access.Lock()
	defer s.access.Unlock()
	if generation != s.generation {
		// Reset while in flight: this outcome no longer belongs to the
		// session.
		s.logger.DebugContext(ctx, "convert superseded by reset, outcome discarded")
		return nil, nil
	}
	s.converting = false
	if err != nil {
		s.lastError = err.Error()
		s.logger.ErrorContext(ctx, "convert: ", err)
		return nil, err
	}
	s.result = result
	s.logger.InfoContext(ctx, "converted ", result.FilteredCount, "/", result.NodeCount, " nodes, ",
		result.GroupCount, " groups, ", result.RuleCount, " rules")
	return result, nil
}

// Preview submits a parse-only request and stores the node list and any
// quota metadata. The stored conversion result is left untouched.
func (s *Session) Preview(ctx context.Context) ([]option.NodeInfo, error) {
	ctx = log.ContextWithNewID(ctx)
	s.access.Lock()
	if strings.TrimSpace(s.profile.Subscription) == "" {
		s.lastError = ErrEmptySubscription.Error()
		s.access.Unlock()
		return nil, ErrEmptySubscription
	}
	s.previewNodes = nil
	s.previewInfo = nil
	s.lastError = ""
	s.previewing = true
	generation := s.generation
	request := BuildParseRequest(s.profile)
	s.access.Unlock()

	s.logger.InfoContext(ctx, "preview: ", len(request.Content), " bytes of subscription text")
	result, err := s.engine.ParseNodes(ctx, request)

	s.access.Lock()
	defer s.access.Unlock()
	if generation != s.generation {
		s.logger.DebugContext(ctx, "preview superseded by reset, outcome discarded")
		return nil, nil
	}
	s.previewing = false
	if err != nil {
		s.lastError = err.Error()
		s.logger.ErrorContext(ctx, "preview: ", err)
		return nil, err
	}
	s.previewNodes = result.Nodes
	s.previewInfo = result.SubscriptionInfo
	s.logger.InfoContext(ctx, "previewed ", len(result.Nodes), " nodes")
	return result.Nodes, nil
}

// ValidatePattern checks a single pattern through the engine.
func (s *Session) ValidatePattern(ctx context.Context, pattern string) bool {
	return NewRegexValidator(s.engine).Validate(ctx, pattern)
}

// ValidatePatterns checks the three filter patterns of the current profile
// concurrently. An empty pattern is valid by definition.
func (s *Session) ValidatePatterns(ctx context.Context) PatternReport {
	s.access.Lock()
	profile := s.profile
	s.access.Unlock()
	validator := NewRegexValidator(s.engine)
	var (
		report PatternReport
		group  sync.WaitGroup
	)
	validate := func(pattern string, valid *bool) {
		group.Add(1)
		go func() {
			defer group.Done()
			*valid = validator.Validate(ctx, pattern)
		}()
	}
	validate(profile.IncludeRegex, &report.Include)
	validate(profile.ExcludeRegex, &report.Exclude)
	validate(profile.RenamePattern, &report.Rename)
	group.Wait()
	return report
}

// PatternReport holds per-field validity; one invalid field does not block
// the others.
type PatternReport struct {
	Include bool `json:"include_regex"`
	Exclude bool `json:"exclude_regex"`
	Rename  bool `json:"rename_pattern"`
}

func (r PatternReport) Valid() bool {
	return r.Include && r.Exclude && r.Rename
}

// ClearResult drops the stored conversion result and any error. Preview data
// and the profile stay.
func (s *Session) ClearResult() {
	s.access.Lock()
	defer s.access.Unlock()
	s.result = nil
	s.lastError = ""
}

// Reset restores the default profile, drops all results and errors and
// forces both busy flags false, even if a request is nominally in flight.
// The eventual settlement of such a request is discarded.
func (s *Session) Reset() {
	s.access.Lock()
	defer s.access.Unlock()
	s.generation++
	s.profile = option.DefaultProfile()
	s.result = nil
	s.previewNodes = nil
	s.previewInfo = nil
	s.lastError = ""
	s.converting = false
	s.previewing = false
}

func (s *Session) Converting() bool {
	s.access.Lock()
	defer s.access.Unlock()
	return s.converting
}

func (s *Session) Previewing() bool {
	s.access.Lock()
	defer s.access.Unlock()
	return s.previewing
}

func (s *Session) Result() *option.ConvertResult {
	s.access.Lock()
	defer s.access.Unlock()
	return s.result
}

func (s *Session) PreviewNodes() []option.NodeInfo {
	s.access.Lock()
	defer s.access.Unlock()
	return s.previewNodes
}

// PreviewInfo returns the quota metadata of the last preview, if the
// provider sent any.
func (s *Session) PreviewInfo() *option.SubscriptionInfo {
	s.access.Lock()
	defer s.access.Unlock()
	return s.previewInfo
}

// LastError returns the stringified failure of the last operation, or ""
// when the session is healthy.
func (s *Session) LastError() string {
	s.access.Lock()
	defer s.access.Unlock()
	return s.lastError
}
