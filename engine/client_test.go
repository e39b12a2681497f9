package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/localsub/localsub/option"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, router *chi.Mux) *Client {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	client, err := NewClient(nil, option.EngineOptions{URL: server.URL})
	require.NoError(t, err)
	return client
}

func TestConvertRoundTrip(t *testing.T) {
	t.Parallel()
	router := chi.NewRouter()
	router.Post("/convert_subscription", func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		require.NoError(t, render.DecodeJSON(r.Body, &fields))
		require.Equal(t, "ss://example", fields["subscription"])
		require.Equal(t, float64(30), fields["timeout_secs"])
		// Empty optional fields must be absent on the wire, not "".
		require.NotContains(t, fields, "ini_url")
		require.NotContains(t, fields, "include_regex")
		render.JSON(w, r, option.ConvertResult{
			YAML:          "proxies: []\n",
			NodeCount:     3,
			FilteredCount: 3,
			GroupCount:    2,
			RuleCount:     10,
			Warnings:      []string{},
		})
	})
	client := newTestEngine(t, router)

	result, err := client.Convert(context.Background(), option.ConvertRequest{
		Subscription: "ss://example",
		TimeoutSecs:  30,
		EnableUDP:    true,
	})
	require.NoError(t, err)
	require.Equal(t, "proxies: []\n", result.YAML)
	require.Equal(t, 3, result.NodeCount)
	require.Equal(t, 2, result.GroupCount)
	require.Nil(t, result.SubscriptionInfo)
}

func TestConvertEngineError(t *testing.T) {
	t.Parallel()
	router := chi.NewRouter()
	router.Post("/convert_subscription", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "No valid nodes found in subscription", http.StatusBadRequest)
	})
	client := newTestEngine(t, router)

	_, err := client.Convert(context.Background(), option.ConvertRequest{Subscription: "bad"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "No valid nodes found in subscription")
}

func TestParseNodes(t *testing.T) {
	t.Parallel()
	total := uint64(1 << 30)
	router := chi.NewRouter()
	router.Post("/parse_nodes", func(w http.ResponseWriter, r *http.Request) {
		var request option.ParseRequest
		require.NoError(t, render.DecodeJSON(r.Body, &request))
		require.Equal(t, "ss://example", request.Content)
		render.JSON(w, r, option.ParseResult{
			Nodes: []option.NodeInfo{
				{Name: "HK-1", Protocol: "ss", Server: "hk.example.org", Port: 8388},
			},
			SubscriptionInfo: &option.SubscriptionInfo{Total: &total},
		})
	})
	client := newTestEngine(t, router)

	result, err := client.ParseNodes(context.Background(), option.ParseRequest{Content: "ss://example", TimeoutSecs: 30})
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	require.Equal(t, uint16(8388), result.Nodes[0].Port)
	require.True(t, result.SubscriptionInfo.HasQuota())
}

func TestValidateRegex(t *testing.T) {
	t.Parallel()
	router := chi.NewRouter()
	router.Post("/validate_regex", func(w http.ResponseWriter, r *http.Request) {
		var request option.RegexRequest
		require.NoError(t, render.DecodeJSON(r.Body, &request))
		render.JSON(w, r, request.Pattern == "HK.*")
	})
	client := newTestEngine(t, router)

	valid, err := client.ValidateRegex(context.Background(), "HK.*")
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = client.ValidateRegex(context.Background(), "([broken")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestPresetConfigs(t *testing.T) {
	t.Parallel()
	router := chi.NewRouter()
	router.Get("/get_preset_configs", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, []option.PresetConfig{
			{Name: "ACL4SSR_Online", URL: "https://example/acl.ini", Description: "default"},
		})
	})
	client := newTestEngine(t, router)

	presets, err := client.PresetConfigs(context.Background())
	require.NoError(t, err)
	require.Len(t, presets, 1)
	require.Equal(t, "ACL4SSR_Online", presets[0].Name)
}

func TestNewClientMissingURL(t *testing.T) {
	t.Parallel()
	_, err := NewClient(nil, option.EngineOptions{})
	require.Error(t, err)
}
