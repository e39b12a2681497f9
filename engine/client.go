// Package engine talks to the remote conversion engine over HTTP/JSON.
package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/localsub/localsub/adapter"
	C "github.com/localsub/localsub/constant"
	"github.com/localsub/localsub/log"
	"github.com/localsub/localsub/option"

	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sagernet/sing/common/json"
)

var _ adapter.Engine = (*Client)(nil)

type Client struct {
	logger     log.ContextLogger
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(logger log.ContextLogger, options option.EngineOptions) (*Client, error) {
	if options.URL == "" {
		return nil, E.New("missing engine url")
	}
	baseURL, err := url.Parse(options.URL)
	if err != nil {
		return nil, E.Cause(err, "parse engine url")
	}
	timeout := options.Timeout
	if timeout == 0 {
		// Leave headroom over the per-request timeout the engine honors.
		timeout = 2 * C.DefaultTimeout
	}
	if logger == nil {
		logger = log.NewNOPLogger()
	}
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

func (c *Client) Convert(ctx context.Context, request option.ConvertRequest) (*option.ConvertResult, error) {
	var result option.ConvertResult
	err := c.post(ctx, "/convert_subscription", request, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ParseNodes(ctx context.Context, request option.ParseRequest) (*option.ParseResult, error) {
	var result option.ParseResult
	err := c.post(ctx, "/parse_nodes", request, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ValidateRegex(ctx context.Context, pattern string) (bool, error) {
	var valid bool
	err := c.post(ctx, "/validate_regex", option.RegexRequest{Pattern: pattern}, &valid)
	if err != nil {
		return false, err
	}
	return valid, nil
}

func (c *Client) PresetConfigs(ctx context.Context) ([]option.PresetConfig, error) {
	var presets []option.PresetConfig
	err := c.get(ctx, "/get_preset_configs", &presets)
	if err != nil {
		return nil, err
	}
	return presets, nil
}

func (c *Client) post(ctx context.Context, path string, request any, response any) error {
	requestContent, err := json.Marshal(request)
	if err != nil {
		return E.Cause(err, "encode request")
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(path).String(), bytes.NewReader(requestContent))
	if err != nil {
		return err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	return c.do(httpRequest, response)
}

func (c *Client) get(ctx context.Context, path string, response any) error {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return err
	}
	return c.do(httpRequest, response)
}

func (c *Client) do(httpRequest *http.Request, response any) error {
	c.logger.DebugContext(httpRequest.Context(), httpRequest.Method, " ", httpRequest.URL.Path)
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return err
	}
	defer httpResponse.Body.Close()
	content, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return E.Cause(err, "read response")
	}
	if httpResponse.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(content))
		if message == "" {
			message = httpResponse.Status
		}
		return E.New("engine error: ", message)
	}
	if response == nil {
		return nil
	}
	err = json.Unmarshal(content, response)
	if err != nil {
		return E.Cause(err, "decode response")
	}
	return nil
}
