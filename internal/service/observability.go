package service

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// UseCaseEvent describes one completed service call, such as a submit,
// an import or a delete.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one slog text line per event to w. Failed
// use cases log at ERROR, the rest at INFO.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	// Sorted so lines for the same use case always read the same way.
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "plan_use_case", attrs...)
}

// observerSet fans each event out to several observers.
type observerSet []UseCaseObserver

func (s observerSet) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range s {
		obs.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop drops nil observers and combines the rest.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var set observerSet
	for _, obs := range observers {
		if obs != nil {
			set = append(set, obs)
		}
	}
	switch len(set) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return set[0]
	default:
		return set
	}
}
