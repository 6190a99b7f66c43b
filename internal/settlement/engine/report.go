package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// Mode identifica a operação executada
type Mode string

const (
	ModeNormalCheck   Mode = "normal_check"
	ModeRecalculation Mode = "recalculation"
	ModeReset         Mode = "reset"
)

// IssueKind classifica o motivo de uma aposta não ter sido liquidada
type IssueKind string

const (
	IssueNotFinal            IssueKind = "not_final"
	IssueNotFound            IssueKind = "not_found"
	IssueProviderUnavailable IssueKind = "provider_unavailable"
	IssueUnknownStatType     IssueKind = "unknown_stat_type"
	IssueUnexpectedDraw      IssueKind = "unexpected_draw"
	IssueInvalidLeg          IssueKind = "invalid_leg"
	IssueStoreWrite          IssueKind = "store_write"
)

// Issue é uma linha do relatório de diagnóstico para acompanhamento manual
type Issue struct {
	BetID  string    `json:"betId"`
	LegID  string    `json:"legId,omitempty"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

// Report resume uma execução de qualquer uma das três operações
type Report struct {
	PassID       string          `json:"passId"`
	Mode         Mode            `json:"mode"`
	Scope        model.DateScope `json:"scope"`
	StartedAt    time.Time       `json:"startedAt"`
	FinishedAt   time.Time       `json:"finishedAt"`
	Scanned      int             `json:"scanned"`
	Settled      int             `json:"settled"`
	Changed      int             `json:"changed"`
	Reset        int             `json:"reset"`
	StillPending int             `json:"stillPending"`
	Issues       []Issue         `json:"issues"`
}

// IssuesOf filtra as issues de um tipo
func (r Report) IssuesOf(kind IssueKind) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

// reportBuilder acumula o relatório a partir de vários workers
type reportBuilder struct {
	mu      sync.Mutex
	passID  string
	mode    Mode
	scope   model.DateScope
	started time.Time
	r       Report
	onIssue func(IssueKind)
}

func newReport(mode Mode, scope model.DateScope, started time.Time, onIssue func(IssueKind)) *reportBuilder {
	return &reportBuilder{
		passID:  uuid.NewString(),
		mode:    mode,
		scope:   scope,
		started: started,
		onIssue: onIssue,
	}
}

func (b *reportBuilder) issue(is Issue) {
	b.mu.Lock()
	b.r.Issues = append(b.r.Issues, is)
	b.mu.Unlock()
	if b.onIssue != nil {
		b.onIssue(is.Kind)
	}
}

func (b *reportBuilder) add(fn func(r *Report)) {
	b.mu.Lock()
	fn(&b.r)
	b.mu.Unlock()
}

func (b *reportBuilder) build(finished time.Time) Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.r
	out.PassID = b.passID
	out.Mode = b.mode
	out.Scope = b.scope
	out.StartedAt = b.started
	out.FinishedAt = finished
	out.Issues = append([]Issue(nil), b.r.Issues...)
	// workers terminam em ordem arbitrária; o relatório sai estável
	sort.SliceStable(out.Issues, func(i, j int) bool {
		if out.Issues[i].BetID != out.Issues[j].BetID {
			return out.Issues[i].BetID < out.Issues[j].BetID
		}
		return out.Issues[i].LegID < out.Issues[j].LegID
	})
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	return out
}
