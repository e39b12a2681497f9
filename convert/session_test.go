package convert

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/localsub/localsub/option"

	E "github.com/sagernet/sing/common/exceptions"

	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	convertFunc  func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error)
	parseFunc    func(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error)
	validateFunc func(ctx context.Context, pattern string) (bool, error)
	presetsFunc  func(ctx context.Context) ([]option.PresetConfig, error)

	convertCalls  atomic.Int32
	parseCalls    atomic.Int32
	validateCalls atomic.Int32
}

func (e *fakeEngine) Convert(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
	e.convertCalls.Add(1)
	if e.convertFunc == nil {
		return nil, E.New("convert not stubbed")
	}
	return e.convertFunc(ctx, request)
}

func (e *fakeEngine) ParseNodes(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error) {
	e.parseCalls.Add(1)
	if e.parseFunc == nil {
		return nil, E.New("parse not stubbed")
	}
	return e.parseFunc(ctx, request)
}

func (e *fakeEngine) ValidateRegex(ctx context.Context, pattern string) (bool, error) {
	e.validateCalls.Add(1)
	if e.validateFunc == nil {
		return false, E.New("validate not stubbed")
	}
	return e.validateFunc(ctx, pattern)
}

func (e *fakeEngine) PresetConfigs(ctx context.Context) ([]option.PresetConfig, error) {
	if e.presetsFunc == nil {
		return nil, E.New("presets not stubbed")
	}
	return e.presetsFunc(ctx)
}

func testResult() *option.ConvertResult {
	return &option.ConvertResult{
		YAML:          "proxies: []\n",
		NodeCount:     3,
		FilteredCount: 3,
		GroupCount:    2,
		RuleCount:     10,
		Warnings:      []string{},
	}
}

func TestConvertEmptySubscription(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "   \n\t"
	session.SetProfile(profile)

	_, err := session.Convert(context.Background())
	require.ErrorIs(t, err, ErrEmptySubscription)
	require.Equal(t, int32(0), engine.convertCalls.Load())
	require.Equal(t, ErrEmptySubscription.Error(), session.LastError())
	require.False(t, session.Converting())
	require.Nil(t, session.Result())
}

func TestConvertSuccess(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			return testResult(), nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "ss://example"
	session.SetProfile(profile)

	result, err := session.Convert(context.Background())
	require.NoError(t, err)
	require.Equal(t, testResult(), result)
	require.Equal(t, testResult(), session.Result())
	require.Empty(t, session.LastError())
	require.False(t, session.Converting())
}

func TestConvertFailure(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			return nil, E.New("no valid nodes found in subscription")
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "not-a-link"
	session.SetProfile(profile)

	_, err := session.Convert(context.Background())
	require.Error(t, err)
	require.Nil(t, session.Result())
	require.Equal(t, "no valid nodes found in subscription", session.LastError())
	require.False(t, session.Converting())
}

func TestConvertClearsPreview(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			return testResult(), nil
		},
		parseFunc: func(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error) {
			return &option.ParseResult{
				Nodes: []option.NodeInfo{{Name: "node-1", Protocol: "ss", Server: "example.org", Port: 8388}},
			}, nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "ss://example"
	session.SetProfile(profile)

	_, err := session.Preview(context.Background())
	require.NoError(t, err)
	require.Len(t, session.PreviewNodes(), 1)

	_, err = session.Convert(context.Background())
	require.NoError(t, err)
	require.Nil(t, session.PreviewNodes())
	require.Nil(t, session.PreviewInfo())
}

func TestConvertUsesResolvedPreset(t *testing.T) {
	t.Parallel()
	var capturedIniURL string
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			capturedIniURL = request.IniURL
			return testResult(), nil
		},
		presetsFunc: func(ctx context.Context) ([]option.PresetConfig, error) {
			return testPresets, nil
		},
	}
	session := NewSession(engine, nil)
	require.NoError(t, session.LoadPresets(context.Background()))
	profile := session.Profile()
	profile.Subscription = "ss://example"
	profile.Preset = "ACL4SSR"
	profile.CustomIniURL = "https://example/other.ini"
	session.SetProfile(profile)

	_, err := session.Convert(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://example/acl.ini", capturedIniURL)
}

func TestPreviewStoresNodesAndInfo(t *testing.T) {
	t.Parallel()
	total := uint64(100 * 1024 * 1024 * 1024)
	engine := &fakeEngine{
		parseFunc: func(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error) {
			return &option.ParseResult{
				Nodes: []option.NodeInfo{
					{Name: "HK-1", Protocol: "vless", Server: "hk.example.org", Port: 443},
					{Name: "SG-1", Protocol: "trojan", Server: "sg.example.org", Port: 443},
				},
				SubscriptionInfo: &option.SubscriptionInfo{Total: &total},
			}, nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "https://example.org/sub"
	session.SetProfile(profile)

	nodes, err := session.Preview(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, nodes, session.PreviewNodes())
	require.True(t, session.PreviewInfo().HasQuota())
	require.False(t, session.Previewing())
	require.Nil(t, session.Result())
}

func TestPreviewEmptySubscription(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{}
	session := NewSession(engine, nil)

	_, err := session.Preview(context.Background())
	require.ErrorIs(t, err, ErrEmptySubscription)
	require.Equal(t, int32(0), engine.parseCalls.Load())
	require.False(t, session.Previewing())
}

func TestClearResultKeepsPreview(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			return testResult(), nil
		},
		parseFunc: func(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error) {
			return &option.ParseResult{
				Nodes: []option.NodeInfo{{Name: "node-1", Protocol: "ss", Server: "example.org", Port: 8388}},
			}, nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "ss://example"
	session.SetProfile(profile)

	_, err := session.Convert(context.Background())
	require.NoError(t, err)
	_, err = session.Preview(context.Background())
	require.NoError(t, err)

	session.ClearResult()
	require.Nil(t, session.Result())
	require.Empty(t, session.LastError())
	require.Len(t, session.PreviewNodes(), 1)
	require.Equal(t, "ss://example", session.Profile().Subscription)
}

func TestResetRestoresDefaults(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			return testResult(), nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "ss://example"
	profile.EnableUDP = false
	profile.EnableTun = true
	session.SetProfile(profile)

	_, err := session.Convert(context.Background())
	require.NoError(t, err)

	session.Reset()
	require.Equal(t, option.DefaultProfile(), session.Profile())
	require.Nil(t, session.Result())
	require.Nil(t, session.PreviewNodes())
	require.Nil(t, session.PreviewInfo())
	require.Empty(t, session.LastError())
	require.False(t, session.Converting())
	require.False(t, session.Previewing())
}

func TestResetDiscardsInflightConvert(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	engine := &fakeEngine{
		convertFunc: func(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
			<-release
			return testResult(), nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.Subscription = "ss://example"
	session.SetProfile(profile)

	done := make(chan struct{})
	go func() {
		defer close(done)
		session.Convert(context.Background())
	}()
	require.Eventually(t, session.Converting, time.Second, time.Millisecond)

	session.Reset()
	require.False(t, session.Converting())

	close(release)
	<-done

	// The late settlement belongs to a superseded generation and must not
	// resurrect any state.
	require.Nil(t, session.Result())
	require.Empty(t, session.LastError())
	require.False(t, session.Converting())
	require.Equal(t, option.DefaultProfile(), session.Profile())
}

func TestLoadPresetsFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		presetsFunc: func(ctx context.Context) ([]option.PresetConfig, error) {
			return nil, E.New("engine unreachable")
		},
	}
	session := NewSession(engine, nil)
	require.Error(t, session.LoadPresets(context.Background()))
	require.Empty(t, session.Presets())

	// Manual URL entry keeps working without presets.
	profile := session.Profile()
	profile.CustomIniURL = "https://example/custom.ini"
	request := BuildConvertRequest(profile, session.Presets())
	require.Equal(t, "https://example/custom.ini", request.IniURL)
}

func TestValidatePatterns(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{
		validateFunc: func(ctx context.Context, pattern string) (bool, error) {
			return pattern != "([invalid", nil
		},
	}
	session := NewSession(engine, nil)
	profile := session.Profile()
	profile.IncludeRegex = "HK|SG"
	profile.ExcludeRegex = "([invalid"
	session.SetProfile(profile)

	report := session.ValidatePatterns(context.Background())
	require.True(t, report.Include)
	require.False(t, report.Exclude)
	require.True(t, report.Rename)
	require.False(t, report.Valid())
	// The empty rename pattern is valid by definition and never round-trips.
	require.Equal(t, int32(2), engine.validateCalls.Load())
}
