// Package llm wraps the completion service behind a structured-extraction
// interface: one call in, one schema-conforming JSON payload out, with
// retry/backoff handled here so callers never see transient failures.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultMaxInputChars caps the text sent per call to bound request
	// cost. The original system used two different ceilings (10k and 8k) at
	// different call sites; one knob is kept here on purpose.
	DefaultMaxInputChars = 10000

	// MinInputChars is the floor below which extraction is refused outright;
	// there is nothing useful to summarize in a few dozen characters.
	MinInputChars = 50

	// DefaultModel must support forced function calling.
	DefaultModel = "gpt-4o-mini"

	// DefaultCallTimeout bounds a single completion call, including server
	// time; calls unresponsive past this are treated as failed attempts.
	DefaultCallTimeout = 60 * time.Second

	truncationMarker = "..."
)

// ErrInputTooShort reports input below MinInputChars.
var ErrInputTooShort = errors.New("input text too short to extract from")

// ErrMalformedResult reports a completion that did not contain a valid call
// of the requested function. It is not retried: the request was accepted,
// the model just answered badly.
var ErrMalformedResult = errors.New("completion did not return a valid function call")

// ExtractorConfig configures an OpenAIExtractor. Zero values fall back to
// the package defaults.
type ExtractorConfig struct {
	APIKey string

	// BaseURL overrides the API endpoint; tests point it at a local server.
	BaseURL string

	Model         string
	MaxInputChars int
	Temperature   float64
	CallTimeout   time.Duration
	Retry         RetryPolicy
}

// OpenAIExtractor performs structured extraction against the OpenAI chat
// completions API using forced function calls. The SDK's own retry loop is
// disabled; the RetryPolicy here is the only one in play.
type OpenAIExtractor struct {
	client      openai.Client
	model       string
	maxInput    int
	temperature float64
	policy      RetryPolicy
}

// NewOpenAIExtractor builds an extractor from cfg.
func NewOpenAIExtractor(cfg ExtractorConfig) *OpenAIExtractor {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = DefaultMaxInputChars
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.Retry == (RetryPolicy{}) {
		cfg.Retry = DefaultRetryPolicy()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.CallTimeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIExtractor{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxInput:    cfg.MaxInputChars,
		temperature: cfg.Temperature,
		policy:      cfg.Retry,
	}
}

// Extract sends text as the user turn with the given system instructions and
// forces the model to call fn. It returns the function-call arguments as raw
// JSON.
//
// Rate-limit responses and transport errors are retried per the policy; any
// other API error fails immediately. Text over the input ceiling is silently
// truncated (with a trailing marker) rather than rejected.
func (e *OpenAIExtractor) Extract(ctx context.Context, text, instructions string, fn FunctionSpec) (json.RawMessage, error) {
	if len(strings.TrimSpace(text)) < MinInputChars {
		return nil, ErrInputTooShort
	}
	if len(text) > e.maxInput {
		log.Info("truncating extraction input", "function", fn.Name, "from", len(text), "to", e.maxInput)
		text = text[:e.maxInput] + truncationMarker
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(text),
		},
		Tools: []openai.ChatCompletionToolUnionParam{
			openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
				Name:        fn.Name,
				Description: openai.String(fn.Description),
				Parameters:  openai.FunctionParameters(fn.Parameters),
			}),
		},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfFunctionToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{Name: fn.Name},
			},
		},
		Temperature: openai.Float(e.temperature),
	}

	var args json.RawMessage
	err := retry.Do(ctx, e.policy.Backoff(), func(ctx context.Context) error {
		completion, err := e.client.Chat.Completions.New(ctx, params)
		if err != nil {
			var apierr *openai.Error
			if errors.As(err, &apierr) {
				if apierr.StatusCode == http.StatusTooManyRequests {
					log.Warn("completion service rate limited, backing off", "function", fn.Name)
					return retry.RetryableError(err)
				}
				return err
			}
			// Transport-level failure (timeout, connection reset): treat the
			// same as a rate limit within the retry budget.
			log.Warn("completion call failed, backing off", "function", fn.Name, "err", err)
			return retry.RetryableError(err)
		}

		args, err = functionArguments(completion, fn.Name)
		return err
	})
	if err != nil {
		log.Error("structured extraction failed", "function", fn.Name, "err", err)
		return nil, fmt.Errorf("extract %s: %w", fn.Name, err)
	}
	return args, nil
}

// functionArguments pulls the forced function's arguments out of a
// completion and verifies they parse as a JSON object. Partially parsed or
// malformed payloads are never returned.
func functionArguments(completion *openai.ChatCompletion, name string) (json.RawMessage, error) {
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResult)
	}
	for _, call := range completion.Choices[0].Message.ToolCalls {
		if call.Function.Name != name {
			continue
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(call.Function.Arguments), &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
		}
		return json.RawMessage(call.Function.Arguments), nil
	}
	return nil, fmt.Errorf("%w: function %s was not called", ErrMalformedResult, name)
}
