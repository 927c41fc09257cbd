// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrate owns the asynchronous process state machine. Callers
// start a fetch or synthesis process and immediately get a process identifier
// back; the pipeline runs as a background task whose terminal state is
// written exactly once, success or failure, and is observed by polling.
package orchestrate

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-hub/internal/source"
	"github.com/pdiddy/research-hub/internal/synthesis"
	"github.com/pdiddy/research-hub/pkg/types"
)

// ProcessStore persists process records. Implemented by internal/store.
type ProcessStore interface {
	InsertProcess(ctx context.Context, p *types.ResearchProcess) error
	UpdateProcess(ctx context.Context, id string, patch types.ProcessPatch) error
	GetProcess(ctx context.Context, id, owner string) (*types.ResearchProcess, error)
}

// DocumentStore persists and queries documents. Implemented by internal/store.
type DocumentStore interface {
	InsertDocument(ctx context.Context, d *types.ResearchDocument) error
	QueryDocuments(ctx context.Context, owner string, q types.DocumentQuery) ([]types.ResearchDocument, error)
}

// Orchestrator launches research pipelines as background tasks and tracks
// their lifecycle. Collaborators are injected so tests can supply doubles.
type Orchestrator struct {
	processes ProcessStore
	documents DocumentStore
	registry  *source.Registry
	backend   synthesis.Backend

	corpusLimit int
	w           io.Writer

	tasks sync.WaitGroup
}

// New builds an orchestrator. Warnings and progress notes from background
// tasks are written to w.
func New(processes ProcessStore, documents DocumentStore, registry *source.Registry, backend synthesis.Backend, cfg types.SynthesisConfig, w io.Writer) *Orchestrator {
	corpusLimit := cfg.CorpusLimit
	if corpusLimit <= 0 {
		corpusLimit = 10
	}
	return &Orchestrator{
		processes:   processes,
		documents:   documents,
		registry:    registry,
		backend:     backend,
		corpusLimit: corpusLimit,
		w:           w,
	}
}

// Wait blocks until every background task started so far has finished. The
// one-shot CLI calls this before exiting; long-lived callers use it for
// graceful shutdown.
func (o *Orchestrator) Wait() {
	o.tasks.Wait()
}

// start persists a pending process record and hands the pipeline off as a
// background task. It returns the process identifier before any pipeline
// work runs; a failure to persist the record is the only fatal path.
func (o *Orchestrator) start(ctx context.Context, proc *types.ResearchProcess, pipeline func(ctx context.Context, proc *types.ResearchProcess) (int, error)) (string, error) {
	proc.ID = uuid.NewString()
	proc.Status = types.StatusPending
	proc.CreatedAt = time.Now().UTC()

	if err := o.processes.InsertProcess(ctx, proc); err != nil {
		return "", fmt.Errorf("creating process record: %w", err)
	}

	o.tasks.Add(1)
	go o.run(proc, pipeline)

	return proc.ID, nil
}

// run executes a pipeline and writes the terminal state exactly once. It is
// detached from the caller's context: once started, a process runs to
// completion or failure. A panicking pipeline lands in the failed state
// rather than tearing the program down.
func (o *Orchestrator) run(proc *types.ResearchProcess, pipeline func(ctx context.Context, proc *types.ResearchProcess) (int, error)) {
	defer o.tasks.Done()
	ctx := context.Background()

	started := time.Now().UTC()
	running := types.StatusInProgress
	if err := o.processes.UpdateProcess(ctx, proc.ID, types.ProcessPatch{
		Status:    &running,
		StartedAt: &started,
	}); err != nil {
		fmt.Fprintf(o.w, "warning: process %s: marking in_progress: %v\n", proc.ID, err)
	}

	var count int
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pipeline panicked: %v", r)
			}
		}()
		count, err = pipeline(ctx, proc)
	}()

	completed := time.Now().UTC()
	if err != nil {
		failed := types.StatusFailed
		msg := err.Error()
		if uerr := o.processes.UpdateProcess(ctx, proc.ID, types.ProcessPatch{
			Status:       &failed,
			CompletedAt:  &completed,
			ErrorMessage: &msg,
		}); uerr != nil {
			fmt.Fprintf(o.w, "warning: process %s: recording failure: %v\n", proc.ID, uerr)
		}
		return
	}

	done := types.StatusCompleted
	if uerr := o.processes.UpdateProcess(ctx, proc.ID, types.ProcessPatch{
		Status:      &done,
		CompletedAt: &completed,
		ResultCount: &count,
	}); uerr != nil {
		fmt.Fprintf(o.w, "warning: process %s: recording completion: %v\n", proc.ID, uerr)
	}
}

// StatusSnapshot is the poll result for one process. Documents are attached
// only when the process has completed.
type StatusSnapshot struct {
	Process   *types.ResearchProcess   `json:"process" yaml:"process"`
	Documents []types.ResearchDocument `json:"documents,omitempty" yaml:"documents,omitempty"`
}

// Status returns the current state of a process, owner scoped. Failures
// surface only through the record's error_message, never from this path for
// a process that exists.
func (o *Orchestrator) Status(ctx context.Context, owner, processID string) (*StatusSnapshot, error) {
	proc, err := o.processes.GetProcess(ctx, processID, owner)
	if err != nil {
		return nil, err
	}

	snap := &StatusSnapshot{Process: proc}
	if proc.Status == types.StatusCompleted {
		docs, err := o.documents.QueryDocuments(ctx, owner, types.DocumentQuery{
			ProcessID: processID,
			Limit:     documentAttachLimit(proc),
		})
		if err != nil {
			fmt.Fprintf(o.w, "warning: process %s: attaching documents: %v\n", processID, err)
		} else {
			snap.Documents = docs
		}
	}
	return snap, nil
}

func documentAttachLimit(proc *types.ResearchProcess) int {
	if proc.MaxResults > 0 {
		return proc.MaxResults
	}
	if proc.ResultCount != nil && *proc.ResultCount > 0 {
		return *proc.ResultCount + 1
	}
	return 0
}
