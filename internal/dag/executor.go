package dag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vk/bundleforge/internal/ctxlog"
	"github.com/vk/bundleforge/internal/step"
)

// ErrUpstreamFailure marks a step abandoned because one of its
// prerequisites failed. It is a symptom, never the reported root cause.
var ErrUpstreamFailure = errors.New("skipped due to upstream failure")

// Executor runs a Graph against a shared step environment.
type Executor struct {
	Graph      *Graph
	Env        *step.Env
	numWorkers int
	// DryRun evaluates staleness and records the plan without invoking
	// any step handler.
	DryRun bool

	wg sync.WaitGroup
}

// NewExecutor creates an executor. workers below 1 is treated as 1, the
// strictly sequential traversal.
func NewExecutor(g *Graph, env *step.Env, workers int, dryRun bool) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{Graph: g, Env: env, numWorkers: workers, DryRun: dryRun}
}

// Run executes the graph and returns an error if any step fails. The
// first real failure cancels the run; steps already executing finish (no
// mid-step cancellation beyond the context handed to their commands), and
// everything downstream is abandoned.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	nodes := e.Graph.Nodes()
	readyChan := make(chan *Node, len(nodes))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rootCount := 0
	for _, node := range nodes {
		if node.depCount.Load() == 0 {
			readyChan <- node
			rootCount++
		}
	}
	logger.Debug("Executor initialized.", "nodes", len(nodes), "roots", rootCount, "workers", e.numWorkers)

	e.wg.Add(len(nodes))
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(runCtx, readyChan, cancel, i)
	}

	e.wg.Wait()
	close(readyChan)

	var failedSteps []string
	var rootCause error
	for _, node := range nodes {
		if node.state.Load() != stateFailed {
			continue
		}
		if node.Err != nil && !errors.Is(node.Err, ErrUpstreamFailure) && !errors.Is(node.Err, context.Canceled) {
			failedSteps = append(failedSteps, node.ID)
			if rootCause == nil {
				rootCause = node.Err
			}
		}
	}

	if rootCause != nil {
		return fmt.Errorf("step %s failed: %w", strings.Join(failedSteps, ", "), rootCause)
	}
	return nil
}

// Results returns one result per node, in graph insertion order. Only
// meaningful after Run returned.
func (e *Executor) Results() []*step.Result {
	nodes := e.Graph.Nodes()
	out := make([]*step.Result, 0, len(nodes))
	for _, node := range nodes {
		if node.Result != nil {
			out = append(out, node.Result)
		}
	}
	return out
}

// worker is the processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *Node, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)

	for node := range readyChan {
		// A node may have been abandoned between becoming ready and
		// being picked up; the state transition decides ownership.
		if !node.state.CompareAndSwap(statePending, stateRunning) {
			continue
		}

		workerLogger := logger.With("workerID", workerID, "step", node.ID)

		if ctx.Err() != nil {
			workerLogger.Warn("Run canceled, abandoning step.")
			e.failNode(ctx, node, ctx.Err())
			continue
		}

		stepCtx := ctxlog.WithLogger(ctx, workerLogger)
		start := time.Now()
		status, err := e.processNode(stepCtx, node)
		elapsed := time.Since(start)

		if err != nil {
			workerLogger.Error("Step failed.", "error", err, "duration", elapsed)
			node.Result = &step.Result{StepID: node.ID, Status: step.StatusFailed, Err: err, Duration: elapsed}
			node.state.Store(stateFailed)
			node.Err = err
			cancel()
			e.wg.Done()
			e.skipDependents(ctx, node)
			continue
		}

		node.Result = &step.Result{StepID: node.ID, Status: status, Duration: elapsed}
		node.state.Store(stateDone)
		e.wg.Done()

		for _, depID := range node.dependentOrder {
			dependent := node.Dependents[depID]
			if dependent.depCount.Add(-1) == 0 {
				readyChan <- dependent
			}
		}
	}
}

// processNode evaluates staleness and, when required, runs the handler.
func (e *Executor) processNode(ctx context.Context, node *Node) (step.Status, error) {
	logger := ctxlog.FromContext(ctx)

	stale, err := node.Step.IsStale(e.Env)
	if err != nil {
		return step.StatusFailed, fmt.Errorf("staleness check: %w", err)
	}
	if !stale {
		logger.Info("⏭️ Step skipped, output already present.")
		return step.StatusSkipped, nil
	}

	if e.DryRun {
		logger.Info("Step would run.", "summary", node.Step.Summary)
		return step.StatusPlanned, nil
	}

	logger.Info("▶️ Running step.", "summary", node.Step.Summary)
	if err := node.Step.Run(ctx, e.Env); err != nil {
		return step.StatusFailed, err
	}
	logger.Info("✅ Step finished.")
	return step.StatusRan, nil
}

// failNode marks an owned node failed and releases its waitgroup slot.
func (e *Executor) failNode(ctx context.Context, node *Node, err error) {
	node.Err = err
	node.Result = &step.Result{StepID: node.ID, Status: step.StatusFailed, Err: err}
	node.state.Store(stateFailed)
	e.wg.Done()
	e.skipDependents(ctx, node)
}

// skipDependents recursively abandons all downstream nodes of a failed
// one. Ownership is taken via the pending→failed transition so a node is
// released exactly once even when reached from several failed parents.
func (e *Executor) skipDependents(ctx context.Context, node *Node) {
	logger := ctxlog.FromContext(ctx)
	for _, depID := range node.dependentOrder {
		dependent := node.Dependents[depID]
		if !dependent.state.CompareAndSwap(statePending, stateFailed) {
			continue
		}
		logger.Warn("Abandoning dependent step.", "step", dependent.ID, "failedDependency", node.ID)
		dependent.Err = fmt.Errorf("%w of '%s'", ErrUpstreamFailure, node.ID)
		dependent.Result = &step.Result{StepID: dependent.ID, Status: step.StatusFailed, Err: dependent.Err}
		e.wg.Done()
		e.skipDependents(ctx, dependent)
	}
}
