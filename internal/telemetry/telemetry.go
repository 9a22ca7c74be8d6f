/*
Package telemetry collects stage timings and counters for a single
minimization run. The core minimizer (internal/qm) depends only on the
small StageTimer interface defined here, never on a concrete backend, so
it stays free of the Prometheus dependency pulled in by PrometheusCollector
for long-running service embeddings; a caller that only wants the plain
Timings/Counts struct can use Collector directly.
*/
package telemetry

import "time"

// Stage names recorded by a minimization run.
const (
	StagePIGeneration   = "pi_generation"
	StageChartBuild     = "chart_build"
	StageEssentials     = "essentials"
	StageReduction      = "reduction"
	StageBranchAndBound = "branch_and_bound"
	StageRender         = "render"
)

// StageTimer is the interface internal/qm uses to report timings. Start
// returns a function that must be called once the stage completes; the
// returned function records the elapsed duration.
type StageTimer interface {
	Start(stage string) (stop func())
	AddCount(name string, n int)
}

// Timings holds the wall-clock duration of each stage of one minimization.
type Timings struct {
	PIGeneration   time.Duration
	ChartBuild     time.Duration
	Essentials     time.Duration
	Reduction      time.Duration
	BranchAndBound time.Duration
	Render         time.Duration
}

// Counts holds size metrics of one minimization, useful both for display
// and for judging which branch of the cover solver was taken.
type Counts struct {
	PrimeImplicants int
	Essential       int
	Selected        int
	BBNodes         int
}

// Collector is the default, dependency-free StageTimer implementation. Its
// zero value is ready to use.
type Collector struct {
	Timings Timings
	Counts  Counts
}

var _ StageTimer = (*Collector)(nil)

// Start begins timing stage and returns a function that records the
// elapsed duration into c.Timings when called.
func (c *Collector) Start(stage string) func() {
	begin := time.Now()
	return func() {
		d := time.Since(begin)
		switch stage {
		case StagePIGeneration:
			c.Timings.PIGeneration += d
		case StageChartBuild:
			c.Timings.ChartBuild += d
		case StageEssentials:
			c.Timings.Essentials += d
		case StageReduction:
			c.Timings.Reduction += d
		case StageBranchAndBound:
			c.Timings.BranchAndBound += d
		case StageRender:
			c.Timings.Render += d
		}
	}
}

// AddCount adds n to the named counter.
func (c *Collector) AddCount(name string, n int) {
	switch name {
	case "prime_implicants":
		c.Counts.PrimeImplicants += n
	case "essential":
		c.Counts.Essential += n
	case "selected":
		c.Counts.Selected += n
	case "bb_nodes":
		c.Counts.BBNodes += n
	}
}

// Collectors fans a single minimization run's timings and counts out to
// every StageTimer it holds, so a caller can record into its own plain
// Collector and, at the same time, a backend such as PrometheusCollector.
type Collectors []StageTimer

var _ StageTimer = Collectors(nil)

// Start begins timing stage on every held timer, returning one stop
// function that stops all of them.
func (cs Collectors) Start(stage string) func() {
	stops := make([]func(), len(cs))
	for i, c := range cs {
		stops[i] = c.Start(stage)
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// AddCount adds n to the named counter on every held timer.
func (cs Collectors) AddCount(name string, n int) {
	for _, c := range cs {
		c.AddCount(name, n)
	}
}

// Noop is a StageTimer that discards everything; useful when a caller of
// internal/qm has no interest in telemetry.
type Noop struct{}

var _ StageTimer = Noop{}

// Start returns a no-op stop function.
func (Noop) Start(string) func() { return func() {} }

// AddCount does nothing.
func (Noop) AddCount(string, int) {}
