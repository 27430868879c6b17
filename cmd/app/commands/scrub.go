package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
	scrubUsecase "github.com/allisson/piiguard/internal/scrub/usecase"
)

// maxLineSize bounds a single stdin line in --lines mode.
const maxLineSize = 4 * 1024 * 1024

// ScrubOptions carries the scrub command flags.
type ScrubOptions struct {
	Context     string
	Strategy    string
	Format      string
	Detail      string
	Record      bool
	Lines       bool
	Concurrency int
}

// RunScrub reads input from io.Reader, scrubs it through the coordinator and writes
// the result to io.Writer.
//
// Input modes:
//   - default: the whole input is one text request
//   - Record: the input is a JSON object whose string fields are scrubbed
//   - Lines: every non-empty line is a separate request, scrubbed as a batch
//
// The json format writes the full result (indented, or one object per line in
// Lines mode). The text format writes only the masked text or record.
func RunScrub(
	ctx context.Context,
	coordinator scrubUsecase.Coordinator,
	defaults piiDomain.StrategyDefaults,
	logger *slog.Logger,
	io IOTuple,
	opts ScrubOptions,
) error {
	if opts.Record && opts.Lines {
		return fmt.Errorf("--record and --lines cannot be combined")
	}

	template, err := buildRequest(opts, defaults)
	if err != nil {
		return err
	}
	format, err := parseFormat(opts.Format)
	if err != nil {
		return err
	}

	if opts.Lines {
		return scrubLines(ctx, coordinator, logger, io, template, format, opts.Concurrency)
	}

	input, err := readInput(io.Reader)
	if err != nil {
		return err
	}

	req := template
	if opts.Record {
		record, err := decodeRecord(input)
		if err != nil {
			return err
		}
		req.Record = record
	} else {
		req.Text = string(input)
	}

	result, err := coordinator.Scrub(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to scrub input: %w", err)
	}

	logger.Info(
		"input scrubbed",
		slog.String("request_id", result.RequestID.String()),
		slog.Int("detections", result.Summary.Total),
		slog.Bool("truncated", result.Truncated),
	)

	if format == "text" {
		return writeMasked(io.Writer, result)
	}
	encoder := json.NewEncoder(io.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func scrubLines(
	ctx context.Context,
	coordinator scrubUsecase.Coordinator,
	logger *slog.Logger,
	io IOTuple,
	template scrubDomain.Request,
	format string,
	concurrency int,
) error {
	scanner := bufio.NewScanner(io.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var reqs []scrubDomain.Request
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		req := template
		req.Text = line
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(reqs) == 0 {
		return nil
	}

	results, err := coordinator.ScrubBatch(ctx, reqs, concurrency)
	if err != nil {
		return fmt.Errorf("failed to scrub input: %w", err)
	}

	total := 0
	encoder := json.NewEncoder(io.Writer)
	for _, result := range results {
		total += result.Summary.Total
		if format == "text" {
			if err := writeMasked(io.Writer, result); err != nil {
				return err
			}
			continue
		}
		if err := encoder.Encode(result); err != nil {
			return err
		}
	}

	logger.Info("input scrubbed", slog.Int("requests", len(results)), slog.Int("detections", total))
	return nil
}

func buildRequest(opts ScrubOptions, defaults piiDomain.StrategyDefaults) (scrubDomain.Request, error) {
	var req scrubDomain.Request

	if opts.Context != "" {
		ctx, err := piiDomain.ParseContext(opts.Context)
		if err != nil {
			return req, fmt.Errorf("invalid context: %w", err)
		}
		req.Context = ctx
	}

	if opts.Strategy != "" {
		strategy, err := piiDomain.ParseStrategy(opts.Strategy, defaults)
		if err != nil {
			return req, fmt.Errorf("invalid strategy: %w", err)
		}
		req.Strategy = strategy
	}

	detail, err := parseDetail(opts.Detail)
	if err != nil {
		return req, err
	}
	req.Detail = detail

	return req, nil
}

func readInput(r io.Reader) ([]byte, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return input, nil
}

// decodeRecord decodes a JSON object keeping numbers as json.Number so they
// survive the round trip unchanged.
func decodeRecord(input []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(input))
	decoder.UseNumber()

	var record map[string]any
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("failed to decode record: input must be a JSON object")
	}
	return record, nil
}

func writeMasked(w io.Writer, result *scrubDomain.Result) error {
	if result.MaskedRecord != nil {
		return json.NewEncoder(w).Encode(result.MaskedRecord)
	}
	text := result.MaskedText
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}
