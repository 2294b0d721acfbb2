// Package solver wires grid generation, portal construction, routing and
// rendering into one traced, logged and measured run.
package solver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/portalgrid/grid"
	"github.com/katalvlaran/portalgrid/internal/config"
	"github.com/katalvlaran/portalgrid/internal/logging"
	"github.com/katalvlaran/portalgrid/internal/metrics"
	"github.com/katalvlaran/portalgrid/portal"
	"github.com/katalvlaran/portalgrid/render"
	"github.com/katalvlaran/portalgrid/route"
)

var tracer = otel.Tracer("portalgrid.solver")

// Report summarises one run.
type Report struct {
	RunID   string        `json:"run_id"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Stats   portal.Stats  `json:"stats"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Route   *route.Path   `json:"route,omitempty"`
	Outputs []string      `json:"outputs,omitempty"`
}

// Run generates the configured random grid and solves it. Generation and
// the solve share one trace under a solver.Run span.
func Run(ctx context.Context, cfg config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "solver.Run")
	defer span.End()

	_, gen := tracer.Start(ctx, "grid.Random", trace.WithAttributes(
		attribute.Int("grid.width", cfg.Grid.Width),
		attribute.Int("grid.height", cfg.Grid.Height),
		attribute.Int64("grid.seed", cfg.Grid.Seed),
	))
	g, err := grid.Random(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Seed)
	if err != nil {
		fail(gen, err)
		gen.End()
		return nil, fail(span, err)
	}
	gen.End()

	rep, err := Solve(ctx, g, cfg)
	if err != nil {
		return nil, fail(span, err)
	}
	return rep, nil
}

// Solve builds the portal graph of g, then routes and renders as cfg asks.
// cfg.Grid is replaced by g's size, so g is subject to the same
// config.MaxGridSide limit as generated grids. A nil g is
// portal.ErrInvalidInput.
func Solve(ctx context.Context, g *grid.Grid, cfg config.Config) (*Report, error) {
	if g == nil {
		metrics.ObserveFailure()
		return nil, fmt.Errorf("%w: grid is nil", portal.ErrInvalidInput)
	}
	cfg.Grid.Width, cfg.Grid.Height = g.Width(), g.Height()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString(), Width: g.Width(), Height: g.Height()}
	logger := logging.FromContext(ctx).With("run_id", rep.RunID)

	ctx, span := tracer.Start(ctx, "solver.Solve", trace.WithAttributes(
		attribute.String("run.id", rep.RunID),
		attribute.Int("grid.width", g.Width()),
		attribute.Int("grid.height", g.Height()),
	))
	defer span.End()

	growth, err := portal.ParseGrowthPolicy(cfg.Portal.Growth)
	if err != nil {
		return nil, fail(span, err)
	}

	logger.Debug("building portal graph", "threshold", cfg.Portal.Threshold, "growth", growth)
	pg, elapsed, err := build(ctx, g, portal.WithThreshold(cfg.Portal.Threshold), portal.WithGrowth(growth))
	if err != nil {
		metrics.ObserveFailure()
		return nil, fail(span, err)
	}
	rep.Stats, rep.Elapsed = pg.Stats(), elapsed
	metrics.ObserveBuild(rep.Stats, elapsed)
	span.SetAttributes(
		attribute.Int("portal.rectangles", rep.Stats.Rectangles),
		attribute.Int("portal.edges", rep.Stats.Edges),
		attribute.Float64("portal.speed_factor", rep.Stats.SpeedFactor),
	)
	logger.Info("portal graph built",
		"portals", rep.Stats.Rectangles,
		"valid-pixels", rep.Stats.PassableCells,
		"speed-factor", rep.Stats.SpeedFactor,
		"edges", rep.Stats.Edges,
		"isolated", rep.Stats.Isolated,
		"elapsed", elapsed,
	)

	if cfg.Route.Enabled {
		p, err := findRoute(ctx, pg, cfg.Route)
		switch {
		case errors.Is(err, route.ErrNoRoute), errors.Is(err, route.ErrEndpoint):
			logger.Warn("no route", "from", cfg.Route.From, "to", cfg.Route.To, "err", err)
		case err != nil:
			return nil, fail(span, err)
		default:
			rep.Route = p
			logger.Info("route found", "hops", p.Hops, "length", p.Length, "weighted", cfg.Route.Weighted)
		}
	}

	if err := renderOutputs(ctx, g, pg, cfg.Output, rep); err != nil {
		return nil, fail(span, err)
	}
	for _, path := range rep.Outputs {
		logger.Info("image written", "path", path)
	}

	return rep, nil
}

// build runs portal.Build inside its own span and times it.
func build(ctx context.Context, g *grid.Grid, opts ...portal.Option) (*portal.Graph, time.Duration, error) {
	_, span := tracer.Start(ctx, "portal.Build")
	defer span.End()

	start := time.Now()
	pg, err := portal.Build(g, opts...)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, fail(span, err)
	}
	return pg, elapsed, nil
}

func findRoute(ctx context.Context, pg *portal.Graph, rc config.RouteConfig) (*route.Path, error) {
	ctx, span := tracer.Start(ctx, "route.Between", trace.WithAttributes(
		attribute.Bool("route.weighted", rc.Weighted),
	))
	defer span.End()

	from := image.Pt(rc.From[0], rc.From[1])
	to := image.Pt(rc.To[0], rc.To[1])
	p, err := route.Between(ctx, pg, from, to, rc.Weighted)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("route.hops", p.Hops))
	return p, nil
}

func renderOutputs(ctx context.Context, g *grid.Grid, pg *portal.Graph, oc config.OutputConfig, rep *Report) error {
	if oc.Passable == "" && oc.Graph == "" {
		return nil
	}
	_, span := tracer.Start(ctx, "render")
	defer span.End()

	if oc.Passable != "" {
		if err := render.Save(oc.Passable, render.Passable(g, pg.Threshold()).Image()); err != nil {
			return fmt.Errorf("solver: passable image: %w", err)
		}
		rep.Outputs = append(rep.Outputs, oc.Passable)
	}
	if oc.Graph != "" {
		if err := render.Save(oc.Graph, render.Graph(g, pg, oc.Scale).Image()); err != nil {
			return fmt.Errorf("solver: graph image: %w", err)
		}
		rep.Outputs = append(rep.Outputs, oc.Graph)
	}
	return nil
}

// fail marks span as failed and returns err unchanged.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
