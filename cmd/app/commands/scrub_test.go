package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/piiguard/internal/app"
	"github.com/allisson/piiguard/internal/config"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
	"github.com/allisson/piiguard/internal/scrub/usecase/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunScrub(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	defaults := piiDomain.StrategyDefaults{}

	t.Run("Success_TextAsJSON", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Scrub", ctx, mock.MatchedBy(func(req scrubDomain.Request) bool {
			return req.Text == "mail john@example.com" &&
				req.Context == piiDomain.ContextHealthcare &&
				req.Strategy == piiDomain.Remove{} &&
				req.Detail == piiDomain.DetailSummary
		})).Return(&scrubDomain.Result{
			MaskedText: "mail ",
			Summary:    scrubDomain.Summary{Total: 1},
		}, nil)

		var out bytes.Buffer
		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader("mail john@example.com"),
			Writer: &out,
		}, ScrubOptions{Context: "healthcare", Strategy: "remove", Format: "json"})

		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "mail ", decoded["masked_text"])
		coordinator.AssertExpectations(t)
	})

	t.Run("Success_TextFormat", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Scrub", ctx, mock.Anything).Return(&scrubDomain.Result{MaskedText: "masked"}, nil)

		var out bytes.Buffer
		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader("raw"),
			Writer: &out,
		}, ScrubOptions{Format: "text"})

		require.NoError(t, err)
		assert.Equal(t, "masked\n", out.String())
	})

	t.Run("Success_RecordKeepsNumbers", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Scrub", ctx, mock.MatchedBy(func(req scrubDomain.Request) bool {
			return req.IsRecord() && req.Record["age"] == json.Number("42")
		})).Return(&scrubDomain.Result{
			MaskedRecord: map[string]any{"age": json.Number("42"), "email": "[EMAIL]"},
		}, nil)

		var out bytes.Buffer
		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader(`{"age": 42, "email": "john@example.com"}`),
			Writer: &out,
		}, ScrubOptions{Record: true, Format: "text"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"age": 42, "email": "[EMAIL]"}`, out.String())
		coordinator.AssertExpectations(t)
	})

	t.Run("Success_LinesUseBatch", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("ScrubBatch", ctx, mock.MatchedBy(func(reqs []scrubDomain.Request) bool {
			return len(reqs) == 2 && reqs[0].Text == "first" && reqs[1].Text == "second"
		}), 3).Return([]*scrubDomain.Result{
			{MaskedText: "one"},
			{MaskedText: "two"},
		}, nil)

		var out bytes.Buffer
		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader("first\n\nsecond\n"),
			Writer: &out,
		}, ScrubOptions{Lines: true, Format: "text", Concurrency: 3})

		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n", out.String())
		coordinator.AssertExpectations(t)
	})

	t.Run("Success_LinesEmptyInput", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}

		var out bytes.Buffer
		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader("\n  \n"),
			Writer: &out,
		}, ScrubOptions{Lines: true})

		require.NoError(t, err)
		assert.Empty(t, out.String())
		coordinator.AssertNotCalled(t, "ScrubBatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidOptions", func(t *testing.T) {
		tests := []struct {
			name string
			opts ScrubOptions
			want string
		}{
			{name: "context", opts: ScrubOptions{Context: "retail"}, want: "invalid context"},
			{name: "strategy", opts: ScrubOptions{Strategy: "shuffle"}, want: "invalid strategy"},
			{name: "format", opts: ScrubOptions{Format: "xml"}, want: "invalid format"},
			{name: "detail", opts: ScrubOptions{Detail: "verbose"}, want: "invalid detail"},
			{name: "modes", opts: ScrubOptions{Record: true, Lines: true}, want: "cannot be combined"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				coordinator := &mocks.MockCoordinator{}
				err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
					Reader: strings.NewReader("x"),
					Writer: &bytes.Buffer{},
				}, tt.opts)

				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.want)
				coordinator.AssertExpectations(t)
			})
		}
	})

	t.Run("Error_RecordNotObject", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}

		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader(`["a", "b"]`),
			Writer: &bytes.Buffer{},
		}, ScrubOptions{Record: true})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode record")
	})

	t.Run("Error_CoordinatorFailure", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Scrub", ctx, mock.Anything).Return(nil, errors.New("store down"))

		err := RunScrub(ctx, coordinator, defaults, logger, IOTuple{
			Reader: strings.NewReader("raw"),
			Writer: &bytes.Buffer{},
		}, ScrubOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scrub input")
	})
}

func TestRunScrub_Container(t *testing.T) {
	ctx := context.Background()
	container := app.NewContainer(&config.Config{
		LogLevel:               "info",
		DetectionMaxInputBytes: 1 << 20,
		DefaultContext:         "general",
		MaskChar:               "*",
		HashAlgorithm:          "sha256",
		HashWidth:              16,
		TokenPrefix:            "TKN",
		TokenTTL:               time.Hour,
		TokenStoreAlgorithm:    "aes-gcm",
		MetricsNamespace:       "piiguard",
	})
	container.SetLogOutput(io.Discard)
	t.Cleanup(func() { _ = container.Shutdown(ctx) })

	coordinator, err := container.Coordinator()
	require.NoError(t, err)

	var out bytes.Buffer
	err = RunScrub(ctx, coordinator, container.StrategyDefaults(), container.Logger(), IOTuple{
		Reader: strings.NewReader("Contact john.doe@example.com today"),
		Writer: &out,
	}, ScrubOptions{Strategy: "placeholder", Format: "json"})

	require.NoError(t, err)
	var result scrubDomain.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "Contact [EMAIL] today", result.MaskedText)
	assert.Equal(t, 1, result.Summary.Total)
	assert.NotContains(t, out.String(), "john.doe@example.com")
}
