package usecase

import (
	"slices"
	"sync"
	"time"

	"SEOAgent/internal/domain"
)

// recorder accumulates a RunReport; per-site workers write into it concurrently.
type recorder struct {
	mu     sync.Mutex
	report domain.RunReport
}

func newRecorder(id string, mode domain.RunMode, startedAt time.Time) *recorder {
	return &recorder{report: domain.RunReport{
		ID:        id,
		Mode:      mode,
		StartedAt: startedAt,
		State:     domain.StateIdle,
		Stages:    []domain.StageResult{},
		Sites:     []domain.SiteResult{},
		Errors:    []domain.RunError{},
	}}
}

func (r *recorder) setState(s domain.RunState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.State = s
}

func (r *recorder) stage(name string, status domain.StageStatus, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Stages = append(r.report.Stages, domain.StageResult{Stage: name, Status: status, Detail: detail})
}

func (r *recorder) fail(stage, target string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Errors = append(r.report.Errors, domain.RunError{Stage: stage, Target: target, Message: err.Error()})
}

func (r *recorder) abort(stage string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.State = domain.StateFailed
	r.report.FailedStage = stage
	r.report.Failure = err.Error()
	r.report.Errors = append(r.report.Errors, domain.RunError{Stage: stage, Message: err.Error()})
}

func (r *recorder) site(res domain.SiteResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Sites = append(r.report.Sites, res)
	r.report.TotalCreated += res.Created
}

func (r *recorder) deploy(outcome domain.DeployOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Deploy = &outcome
}

func (r *recorder) cancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Cancelled = true
}

func (r *recorder) totalCreated() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.report.TotalCreated
}

// snapshot returns a deep enough copy for callers to read without the lock.
func (r *recorder) snapshot() *domain.RunReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.report
	out.Stages = slices.Clone(r.report.Stages)
	out.Sites = slices.Clone(r.report.Sites)
	out.Errors = slices.Clone(r.report.Errors)
	if r.report.Deploy != nil {
		d := *r.report.Deploy
		out.Deploy = &d
	}
	return &out
}

func (r *recorder) finish(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.report.State != domain.StateFailed {
		r.report.State = domain.StateDone
	}
	r.report.FinishedAt = at
}
