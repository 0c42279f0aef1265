package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/structmatch/pkg/match"
)

// Harness is the scenario execution engine.
// It is stateless apart from its logger and safe for concurrent use.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for per-case diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Harness. Without WithLogger, logs are discarded.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(context.Background(), scenario)
}

// Run evaluates every case of the scenario and returns the result.
//
// An error is returned only when the scenario cannot be executed (invalid
// structure, unreadable received file, cancelled context). Cases whose
// verdict differs from their expectation are reported in Result.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	structure, err := scenario.Shape()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult(scenario.Name)
	for i, c := range scenario.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		received, err := h.received(scenario, c)
		if err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i, c.Name, err)
		}

		cr := evaluateCase(c, match.Evaluate(structure, received))
		result.AddCase(cr)

		h.logger.Debug("case evaluated",
			"scenario", scenario.Name,
			"case", c.Name,
			"expect", c.Expect,
			"matched", cr.Matched,
			"failures", len(cr.Failures),
			"pass", cr.Pass,
		)
	}

	passed, failed := result.Counts()
	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"passed", passed,
		"failed", failed,
	)

	return result, nil
}

func (h *Harness) received(s *Scenario, c Case) (any, error) {
	if c.ReceivedFile == "" {
		return c.Received, nil
	}
	return LoadValue(resolvePath(s.Dir, c.ReceivedFile))
}
