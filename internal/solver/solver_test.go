package solver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/portalgrid/grid"
	"github.com/katalvlaran/portalgrid/internal/config"
	"github.com/katalvlaran/portalgrid/internal/logging"
	"github.com/katalvlaran/portalgrid/internal/metrics"
	"github.com/katalvlaran/portalgrid/portal"
)

var recorder = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	// The package tracer delegates to the first provider installed, so
	// install exactly one for the whole test binary.
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	os.Exit(m.Run())
}

// runSpans returns the names and spans of the trace that produced runID.
func runSpans(t *testing.T, runID string) map[string]sdktrace.ReadOnlySpan {
	t.Helper()
	var traceID trace.TraceID
	for _, s := range recorder.Ended() {
		for _, kv := range s.Attributes() {
			if kv.Key == "run.id" && kv.Value.AsString() == runID {
				traceID = s.SpanContext().TraceID()
			}
		}
	}
	require.True(t, traceID.IsValid(), "no span carries run id %s", runID)

	out := make(map[string]sdktrace.ReadOnlySpan)
	for _, s := range recorder.Ended() {
		if s.SpanContext().TraceID() == traceID {
			out[s.Name()] = s
		}
	}
	return out
}

// ring is a 3×3 grid with a blocked centre.
func ring(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows([][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	return g
}

func quiet() config.Config {
	cfg := config.Default()
	cfg.Output.Passable = ""
	cfg.Output.Graph = ""
	return cfg
}

func TestSolve_LogsStatsAndRecordsMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("info", "text", &buf)
	require.NoError(t, err)
	ctx := logging.WithLogger(context.Background(), logger)

	rep, err := Solve(ctx, ring(t), quiet())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 3, rep.Width)
	assert.Equal(t, 3, rep.Height)
	assert.Equal(t, portal.Stats{
		PassableCells: 8,
		Rectangles:    4,
		Edges:         4,
		SpeedFactor:   2,
	}, rep.Stats)
	assert.Nil(t, rep.Route)
	assert.Empty(t, rep.Outputs)

	out := buf.String()
	assert.Contains(t, out, "portals=4")
	assert.Contains(t, out, "valid-pixels=8")
	assert.Contains(t, out, "speed-factor=2")
	assert.Contains(t, out, "run_id="+rep.RunID)

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Rectangles))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Edges))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SpeedFactor))
}

func TestSolve_Route(t *testing.T) {
	cfg := quiet()
	cfg.Route = config.RouteConfig{Enabled: true, From: [2]int{0, 0}, To: [2]int{2, 2}}

	rep, err := Solve(context.Background(), ring(t), cfg)
	require.NoError(t, err)
	require.NotNil(t, rep.Route)
	assert.Equal(t, []int{0, 2}, rep.Route.Nodes)
	assert.Equal(t, 1, rep.Route.Hops)

	spans := runSpans(t, rep.RunID)
	assert.Contains(t, spans, "solver.Solve")
	assert.Contains(t, spans, "portal.Build")
	assert.Contains(t, spans, "route.Between")
	assert.NotContains(t, spans, "render")
}

func TestSolve_RouteFromBlockedCellIsNotFatal(t *testing.T) {
	cfg := quiet()
	cfg.Route = config.RouteConfig{Enabled: true, From: [2]int{1, 1}, To: [2]int{2, 2}}

	rep, err := Solve(context.Background(), ring(t), cfg)
	require.NoError(t, err)
	assert.Nil(t, rep.Route)

	span := runSpans(t, rep.RunID)["route.Between"]
	require.NotNil(t, span)
	require.NotEmpty(t, span.Events())
	assert.Equal(t, "exception", span.Events()[0].Name)
}

func TestSolve_RouteOutsideGrid(t *testing.T) {
	cfg := quiet()
	cfg.Route = config.RouteConfig{Enabled: true, From: [2]int{0, 0}, To: [2]int{5, 5}}

	_, err := Solve(context.Background(), ring(t), cfg)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestSolve_WritesImages(t *testing.T) {
	dir := t.TempDir()
	cfg := quiet()
	cfg.Output.Passable = filepath.Join(dir, "passable.png")
	cfg.Output.Graph = filepath.Join(dir, "graph.tga")
	cfg.Output.Scale = 4

	rep, err := Solve(context.Background(), ring(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.Output.Passable, cfg.Output.Graph}, rep.Outputs)

	for _, p := range rep.Outputs {
		fi, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, fi.Size())
	}
	// 18-byte header plus 12×12 BGR pixels.
	fi, err := os.Stat(cfg.Output.Graph)
	require.NoError(t, err)
	assert.EqualValues(t, 18+12*12*3, fi.Size())

	assert.Contains(t, runSpans(t, rep.RunID), "render")
}

func TestSolve_RenderFailureMarksSpan(t *testing.T) {
	cfg := quiet()
	cfg.Output.Graph = filepath.Join(t.TempDir(), "missing", "graph.png")

	_, err := Solve(context.Background(), ring(t), cfg)
	require.Error(t, err)

	var failed sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() == "solver.Solve" && s.Status().Code == codes.Error {
			failed = s
		}
	}
	require.NotNil(t, failed)
	assert.Contains(t, failed.Status().Description, "graph image")
}

func TestSolve_InvalidConfig(t *testing.T) {
	cfg := quiet()
	cfg.Portal.Growth = "sideways"

	_, err := Solve(context.Background(), ring(t), cfg)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestRun_Deterministic(t *testing.T) {
	cfg := quiet()
	cfg.Grid = config.GridConfig{Width: 40, Height: 30, Seed: 7}
	cfg.Route = config.RouteConfig{Enabled: true, From: [2]int{0, 0}, To: [2]int{39, 29}, Weighted: true}

	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Route, b.Route)

	g, err := grid.Random(40, 30, 7)
	require.NoError(t, err)
	assert.Equal(t, g.PassableCount(cfg.Portal.Threshold), a.Stats.PassableCells)
}

func TestRun_ClipPolicyStillCovers(t *testing.T) {
	cfg := quiet()
	cfg.Grid = config.GridConfig{Width: 25, Height: 25, Seed: 11}
	cfg.Portal.Growth = "clip"

	rep, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	g, err := grid.Random(25, 25, 11)
	require.NoError(t, err)
	pg, err := portal.Build(g, portal.WithGrowth(portal.GrowClip))
	require.NoError(t, err)
	assert.Equal(t, pg.Stats(), rep.Stats)
}

func TestSolve_Unreachable(t *testing.T) {
	g, err := grid.FromRows([][]float64{
		{0, 1, 0},
	})
	require.NoError(t, err)
	cfg := quiet()
	cfg.Route = config.RouteConfig{Enabled: true, From: [2]int{0, 0}, To: [2]int{2, 0}}

	rep, err := Solve(context.Background(), g, cfg)
	require.NoError(t, err)
	assert.Nil(t, rep.Route)
	assert.Equal(t, 2, rep.Stats.Isolated)
	assert.Zero(t, rep.Stats.Edges)
}

func TestSolve_NilGrid(t *testing.T) {
	failures := metrics.BuildsTotal.WithLabelValues(metrics.ResultInvalidInput)
	before := testutil.ToFloat64(failures)

	rep, err := Solve(context.Background(), nil, quiet())
	require.ErrorIs(t, err, portal.ErrInvalidInput)
	assert.Nil(t, rep)
	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestRun_SingleTrace(t *testing.T) {
	cfg := quiet()
	cfg.Grid = config.GridConfig{Width: 12, Height: 9, Seed: 4}

	rep, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	spans := runSpans(t, rep.RunID)
	require.Contains(t, spans, "solver.Run")
	require.Contains(t, spans, "grid.Random")
	require.Contains(t, spans, "solver.Solve")

	root := spans["solver.Run"].SpanContext().SpanID()
	assert.False(t, spans["solver.Run"].Parent().IsValid())
	assert.Equal(t, root, spans["grid.Random"].Parent().SpanID())
	assert.Equal(t, root, spans["solver.Solve"].Parent().SpanID())
}
