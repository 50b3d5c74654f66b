package domain

import "time"

// RunState is a step of the orchestrator state machine.
type RunState string

const (
	StateIdle       RunState = "idle"
	StateAnalyzing  RunState = "analyzing"
	StateSuggesting RunState = "suggesting"
	StateGenerating RunState = "generating"
	StateDeploying  RunState = "deploying"
	StateDone       RunState = "done"
	StateFailed     RunState = "failed"
)

// Stage names used in stage results and error entries.
const (
	StageAnalyze  = "analyze"
	StageSuggest  = "suggest"
	StageGenerate = "generate"
	StageDeploy   = "deploy"
	StageNotify   = "notify"
)

// RunMode identifies which entry point produced a report.
type RunMode string

const (
	ModeFull     RunMode = "full"
	ModeAnalyze  RunMode = "analyze"
	ModeGenerate RunMode = "generate"
	ModeDeploy   RunMode = "deploy"
)

// StageStatus summarizes how a stage ended.
type StageStatus string

const (
	StageOK       StageStatus = "ok"
	StageDegraded StageStatus = "degraded"
	StageFailed   StageStatus = "failed"
	StageSkipped  StageStatus = "skipped"
)

// StageResult is the outcome of one pipeline stage.
type StageResult struct {
	Stage  string      `json:"stage"`
	Status StageStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// SiteResult counts what happened to one site's batch.
type SiteResult struct {
	SiteID    string `json:"siteId"`
	SiteName  string `json:"siteName"`
	Requested int    `json:"requested"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// RunError is a recorded, non-fatal or fatal failure. Target names a site or competitor.
type RunError struct {
	Stage   string `json:"stage"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

// DeployOutcome records the deploy collaborator's answer.
type DeployOutcome struct {
	Targets []string `json:"targets"`
	Success bool     `json:"success"`
	Log     []string `json:"log"`
}

// RunReport is the artifact produced by every orchestrator entry point.
type RunReport struct {
	ID           string         `json:"id"`
	Mode         RunMode        `json:"mode"`
	StartedAt    time.Time      `json:"startedAt"`
	FinishedAt   time.Time      `json:"finishedAt"`
	State        RunState       `json:"state"`
	FailedStage  string         `json:"failedStage,omitempty"`
	Failure      string         `json:"failure,omitempty"`
	Cancelled    bool           `json:"cancelled,omitempty"`
	Stages       []StageResult  `json:"stages"`
	Sites        []SiteResult   `json:"sites"`
	TotalCreated int            `json:"totalCreated"`
	Deploy       *DeployOutcome `json:"deploy,omitempty"`
	Errors       []RunError     `json:"errors"`
}

// ErrorsFor returns the error entries recorded against target.
func (r *RunReport) ErrorsFor(target string) []RunError {
	var out []RunError
	for _, e := range r.Errors {
		if e.Target == target {
			out = append(out, e)
		}
	}
	return out
}

// Site returns the result row for siteID, if any.
func (r *RunReport) Site(siteID string) (SiteResult, bool) {
	for _, s := range r.Sites {
		if s.SiteID == siteID {
			return s, true
		}
	}
	return SiteResult{}, false
}
