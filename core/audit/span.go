// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Span represents a unit of timed work: an HTTP request in flight, or an
// engine operation performed while serving one.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Kind       SpanKind
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Error      error
	Size       int // Size is the response length in bytes, or the number of items processed.
}

// SpanKind describes what a span measures.
type SpanKind string

// Kinds of spans.
const (
	// ToUser is a response served to a client.
	ToUser SpanKind = "user"
	// Engine is a call into the expander, list formatter or comparator.
	Engine SpanKind = "engine"
	// Cache is a render cache lookup.
	Cache SpanKind = "cache"
)

// ServerTimingName returns the metric name reported in the Server-Timing
// header: kind, method and base64url-encoded URL (or operation name) joined
// with '$'.
func (span Span) ServerTimingName() string {
	// base64 without trailing '=' keeps the name a valid token.
	return string(span.Kind) + "$" + span.Method + "$" + base64.RawURLEncoding.EncodeToString([]byte(span.URL))
}

// Begin starts timing the span. If ctx carries a Server-Timing collector, the
// span is also reported as a metric.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "phrasebook."+string(span.Kind))
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.ServerTimingName())
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End stops timing the span. Calls after the first have no effect.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration returns the time between Begin and End.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span at debug level, or at warn level for failed requests.
func (span Span) Log() {
	event := log.Debug()
	if span.Error != nil || span.StatusCode >= 500 {
		event = log.WithLevel(zerolog.WarnLevel)
	}

	event.
		Str("sys", "http").
		Str("kind", string(span.Kind)).
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration).
		Str("request_id", span.RequestID)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	case x < bytesInGB:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
