package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/provider"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement/teams"
	"github.com/radieske/bet-settlement-engine/internal/shared/clock"
	"github.com/radieske/bet-settlement-engine/pkg/contracts/events"
)

const day = "2025-12-03"

type fakeProvider struct {
	mu        sync.Mutex
	games     map[string][]model.Game
	boxes     map[string]model.BoxScoreStat // gameID|playerID
	failDates map[string]error
	block     bool
	listCalls map[string]int
	boxCalls  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		games:     map[string][]model.Game{},
		boxes:     map[string]model.BoxScoreStat{},
		failDates: map[string]error{},
		listCalls: map[string]int{},
	}
}

func (f *fakeProvider) ListGames(ctx context.Context, date string) ([]model.Game, error) {
	f.mu.Lock()
	f.listCalls[date]++
	block := f.block
	err := f.failDates[date]
	games := append([]model.Game(nil), f.games[date]...)
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (f *fakeProvider) GetPlayerBoxScore(_ context.Context, gameID, playerID string) (*model.BoxScoreStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boxCalls++
	b, ok := f.boxes[gameID+"|"+playerID]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return &b, nil
}

func (f *fakeProvider) addGame(g model.Game) {
	f.games[g.Date] = append(f.games[g.Date], g)
}

func (f *fakeProvider) addBox(gameID, playerID string, b model.BoxScoreStat) {
	b.GameID, b.PlayerID = gameID, playerID
	f.boxes[gameID+"|"+playerID] = b
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BetSettled
}

func (p *recordingPublisher) PublishBetSettled(_ context.Context, e events.BetSettled) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func newEngine(t *testing.T, store repo.Store, prov provider.StatProvider) *Engine {
	t.Helper()
	now := clock.Fixed(time.Date(2025, 12, 4, 15, 0, 0, 0, time.UTC))
	return New(store, prov, teams.DefaultNBA(), now, nil, Config{Workers: 4, ProviderTimeout: time.Second})
}

func propLeg(id, player, team, opp, stat string, line float64, ou model.OverUnder) model.Leg {
	return model.Leg{
		ID: id, PlayerID: player, PlayerName: player, Team: team, Opponent: opp,
		StatType: stat, Line: line, OverUnder: ou, LegResult: model.OutcomePending,
	}
}

func pending(id string, legs ...model.Leg) model.Bet {
	return model.Bet{
		ID: id, PlacedDate: day, GameDate: day,
		Status: model.StatusPending, Result: model.OutcomePending, Legs: legs,
	}
}

func completed(id string, result model.Outcome, legs ...model.Leg) model.Bet {
	return model.Bet{
		ID: id, PlacedDate: day, GameDate: day,
		Status: model.StatusCompleted, Result: result, RealizedValue: model.RealizedValueFor(result), Legs: legs,
	}
}

func settledLeg(l model.Leg, res model.Outcome, actual float64) model.Leg {
	l.LegResult = res
	l.ActualValue = &actual
	return l
}

func knicksCeltics(status string) model.Game {
	return model.Game{ID: "g1", HomeTeam: "New York Knicks", AwayTeam: "Boston Celtics", Date: day, Status: status, HomeScore: 118, AwayScore: 110}
}

func getBet(t *testing.T, s repo.Store, id string) model.Bet {
	t.Helper()
	b, err := s.GetBet(context.Background(), id)
	require.NoError(t, err)
	return b
}

func TestNormalCheckSingleLegEndToEnd(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 18, Pts: 20, MinutesPlayed: 36})
	store := repo.NewMemory(pending("b1", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))
	pub := &recordingPublisher{}
	e := newEngine(t, store, prov)
	e.Publisher = pub

	rep, err := e.RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Scanned)
	assert.Equal(t, 1, rep.Settled)
	assert.Empty(t, rep.Issues)

	b := getBet(t, store, "b1")
	assert.Equal(t, model.StatusCompleted, b.Status)
	assert.Equal(t, model.OutcomeWin, b.Result)
	require.NotNil(t, b.RealizedValue)
	assert.Equal(t, 1.0, *b.RealizedValue)
	assert.Equal(t, model.OutcomeWin, b.Legs[0].LegResult)
	assert.Equal(t, 18.0, *b.Legs[0].ActualValue)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "b1", pub.events[0].BetID)
	assert.Equal(t, "win", pub.events[0].Result)
	assert.Equal(t, rep.PassID, pub.events[0].PassID)
	assert.Equal(t, string(ModeNormalCheck), pub.events[0].Mode)
}

func TestNormalCheckNeverResolvesUnfinishedGames(t *testing.T) {
	for _, status := range []string{"Scheduled", "In Progress"} {
		t.Run(status, func(t *testing.T) {
			prov := newFakeProvider()
			prov.addGame(knicksCeltics(status))
			prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 18, MinutesPlayed: 30})
			prov.addBox("g1", "brunson", model.BoxScoreStat{Pts: 40, MinutesPlayed: 30})
			store := repo.NewMemory(pending("b1", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))

			rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
			require.NoError(t, err)
			assert.Equal(t, 0, rep.Settled)
			assert.Equal(t, 1, rep.StillPending)
			assert.Len(t, rep.IssuesOf(IssueNotFinal), 1)

			b := getBet(t, store, "b1")
			assert.Equal(t, model.StatusPending, b.Status)
			assert.Equal(t, model.OutcomePending, b.Result)
			assert.Nil(t, b.RealizedValue)
			assert.Equal(t, model.OutcomePending, b.Legs[0].LegResult)
			assert.Nil(t, b.Legs[0].ActualValue)
		})
	}
}

func TestNormalCheckParlayWaitsForAllLegs(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addGame(model.Game{ID: "g2", HomeTeam: "LAL", AwayTeam: "PHX", Date: day, Status: "In Progress"})
	prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 3, MinutesPlayed: 30})
	store := repo.NewMemory(pending("b1",
		propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over), // já perdeu
		propLeg("l2", "james", "LAL", "PHX", "pts", 25.5, model.Over),
	))

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.StillPending)

	// nada gravado: nem a perna perdida
	b := getBet(t, store, "b1")
	assert.Equal(t, model.OutcomePending, b.Result)
	assert.Equal(t, model.OutcomePending, b.Legs[0].LegResult)
	assert.Equal(t, model.OutcomePending, b.Legs[1].LegResult)
}

func TestNormalCheckParlayPushRuleAndVoidExclusion(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addBox("g1", "towns", model.BoxScoreStat{Pts: 18, Reb: 5, Ast: 3, MinutesPlayed: 30})
	prov.addBox("g1", "brunson", model.BoxScoreStat{Pts: 25, MinutesPlayed: 34})
	prov.addBox("g1", "robinson", model.BoxScoreStat{}) // DNP
	store := repo.NewMemory(pending("b1",
		propLeg("l1", "towns", "NYK", "BOS", "pra", 26, model.Over),     // empate em linha inteira: win
		propLeg("l2", "brunson", "NYK", "BOS", "pts", 25, model.Under),  // empate em linha inteira: win
		propLeg("l3", "robinson", "NYK", "BOS", "reb", 8.5, model.Over), // não jogou: void
	))

	_, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)

	b := getBet(t, store, "b1")
	assert.Equal(t, model.OutcomeWin, b.Result)
	assert.Equal(t, model.OutcomeWin, b.Legs[0].LegResult)
	assert.Equal(t, 26.0, *b.Legs[0].ActualValue)
	assert.Equal(t, model.OutcomeWin, b.Legs[1].LegResult)
	assert.Equal(t, model.OutcomeVoid, b.Legs[2].LegResult)
}

func TestNormalCheckAllVoidBet(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	l := propLeg("l1", "ghost", "NYK", "BOS", "pts", 10.5, model.Over)
	store := repo.NewMemory(pending("b1", l))

	_, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)

	b := getBet(t, store, "b1")
	assert.Equal(t, model.StatusCompleted, b.Status)
	assert.Equal(t, model.OutcomeVoid, b.Result)
	assert.Equal(t, 0.0, *b.RealizedValue)
}

func TestNormalCheckFallbackResolvesStaleTeam(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(model.Game{ID: "g1", HomeTeam: "ABC", AwayTeam: "DEF", Date: day, Status: "Final"})
	prov.addGame(model.Game{ID: "g2", HomeTeam: "GHI", AwayTeam: "ABC", Date: day, Status: "Final"})
	prov.addGame(model.Game{ID: "g3", HomeTeam: "JKL", AwayTeam: "MNO", Date: day, Status: "Final"})
	prov.addBox("g3", "P1", model.BoxScoreStat{Ast: 11, MinutesPlayed: 33})
	store := repo.NewMemory(pending("b1", propLeg("l1", "P1", "XYZ", "ABC", "ast", 9.5, model.Over)))

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Empty(t, rep.Issues)

	b := getBet(t, store, "b1")
	assert.Equal(t, model.OutcomeWin, b.Result)
	assert.Equal(t, 11.0, *b.Legs[0].ActualValue)
}

func TestNormalCheckPlayerInAnotherGameThanTeamsSay(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addGame(model.Game{ID: "g2", HomeTeam: "LAL", AwayTeam: "PHX", Date: day, Status: "Final"})
	prov.addBox("g2", "traded", model.BoxScoreStat{Pts: 12, MinutesPlayed: 20})
	store := repo.NewMemory(pending("b1", propLeg("l1", "traded", "NYK", "BOS", "pts", 9.5, model.Over)))

	_, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)

	b := getBet(t, store, "b1")
	assert.Equal(t, model.OutcomeWin, b.Result)
	assert.Equal(t, 12.0, *b.Legs[0].ActualValue)
}

func TestNormalCheckNotFoundStaysPending(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	store := repo.NewMemory(pending("b1", model.Leg{ID: "l1", IsGameProp: true, Team: "LAL", Opponent: "PHX", Market: "moneyline", LegResult: model.OutcomePending}))

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	require.Len(t, rep.IssuesOf(IssueNotFound), 1)
	assert.Equal(t, "l1", rep.IssuesOf(IssueNotFound)[0].LegID)
	assert.Equal(t, model.OutcomePending, getBet(t, store, "b1").Result)
}

func TestNormalCheckMoneyline(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	store := repo.NewMemory(
		pending("win", model.Leg{ID: "l1", IsGameProp: true, Team: "Knicks", Opponent: "Celtics", Market: "moneyline", LegResult: model.OutcomePending}),
		pending("loss", model.Leg{ID: "l2", IsGameProp: true, Team: "BOS", Opponent: "NYK", Market: "moneyline", LegResult: model.OutcomePending}),
		pending("bad", model.Leg{ID: "l3", IsGameProp: true, Team: "BOS", Opponent: "NYK", Market: "spread", LegResult: model.OutcomePending}),
	)

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Settled)
	assert.Len(t, rep.IssuesOf(IssueInvalidLeg), 1)
	assert.Equal(t, model.OutcomeWin, getBet(t, store, "win").Result)
	assert.Equal(t, model.OutcomeLoss, getBet(t, store, "loss").Result)
	assert.Equal(t, model.OutcomePending, getBet(t, store, "bad").Result)
}

func TestNormalCheckDrawWithoutDrawsIsIssue(t *testing.T) {
	prov := newFakeProvider()
	g := knicksCeltics("Final")
	g.AwayScore = g.HomeScore
	prov.addGame(g)
	store := repo.NewMemory(pending("b1", model.Leg{ID: "l1", IsGameProp: true, Team: "NYK", Opponent: "BOS", LegResult: model.OutcomePending}))

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Len(t, rep.IssuesOf(IssueUnexpectedDraw), 1)
	assert.Equal(t, model.OutcomePending, getBet(t, store, "b1").Result)
}

func TestNormalCheckUnknownStatTypeOnlyFailsThatLeg(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 12, MinutesPlayed: 30})
	store := repo.NewMemory(
		pending("bad", propLeg("l1", "towns", "NYK", "BOS", "turnovers", 2.5, model.Under)),
		pending("good", propLeg("l2", "towns", "NYK", "BOS", "reb", 10.5, model.Over)),
	)

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Len(t, rep.IssuesOf(IssueUnknownStatType), 1)
	assert.Equal(t, model.OutcomePending, getBet(t, store, "bad").Result)
	assert.Equal(t, model.OutcomeWin, getBet(t, store, "good").Result)
}

func TestNormalCheckProviderErrorDoesNotAbortBatch(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 12, MinutesPlayed: 30})
	prov.failDates["2025-12-02"] = errors.New("connection reset")

	broken := pending("broken", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over))
	broken.GameDate = "2025-12-02"
	store := repo.NewMemory(broken, pending("ok", propLeg("l2", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	require.Len(t, rep.IssuesOf(IssueProviderUnavailable), 1)
	assert.Equal(t, "broken", rep.IssuesOf(IssueProviderUnavailable)[0].BetID)
	assert.Equal(t, model.OutcomePending, getBet(t, store, "broken").Result)
	assert.Equal(t, model.OutcomeWin, getBet(t, store, "ok").Result)
}

func TestNormalCheckProviderTimeoutLeavesBetPending(t *testing.T) {
	prov := newFakeProvider()
	prov.block = true
	store := repo.NewMemory(pending("b1", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))
	e := New(store, prov, teams.DefaultNBA(), clock.Fixed(time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC)), nil,
		Config{Workers: 1, ProviderTimeout: 20 * time.Millisecond})

	rep, err := e.RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	issues := rep.IssuesOf(IssueProviderUnavailable)
	require.Len(t, issues, 1)
	assert.Equal(t, model.OutcomePending, getBet(t, store, "b1").Result)
}

func TestNormalCheckFetchesEachDateOnce(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 12, MinutesPlayed: 30})
	var bets []model.Bet
	for _, id := range []string{"b1", "b2", "b3", "b4", "b5", "b6"} {
		bets = append(bets, pending(id, propLeg(id+"-l", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))
	}
	store := repo.NewMemory(bets...)

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Settled)
	assert.Equal(t, 1, prov.listCalls[day])
}

func TestNormalCheckIsIdempotent(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Final"))
	prov.addBox("g1", "towns", model.BoxScoreStat{Reb: 12, MinutesPlayed: 30})
	store := repo.NewMemory(pending("b1", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))
	e := newEngine(t, store, prov)

	first, err := e.RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Settled)

	second, err := e.RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Scanned)
	assert.Equal(t, 0, second.Settled)
}

func TestNormalCheckDefaultScopeStopsAtToday(t *testing.T) {
	prov := newFakeProvider()
	future := pending("future", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over))
	future.GameDate = "2025-12-10"
	store := repo.NewMemory(future)

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Scanned)
	assert.Equal(t, "2025-12-04", rep.Scope.To)
	assert.Empty(t, prov.listCalls)
}

func TestNormalCheckFutureStartIsEmptyPass(t *testing.T) {
	prov := newFakeProvider()
	future := pending("future", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over))
	future.GameDate = "2025-12-10"
	store := repo.NewMemory(future)

	rep, err := newEngine(t, store, prov).RunNormalCheck(context.Background(), model.DateScope{From: "2025-12-10"})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Scanned)
	assert.Equal(t, 0, rep.Settled)
	assert.Equal(t, "2025-12-10", rep.Scope.From)
	assert.Empty(t, rep.Issues)
	assert.Empty(t, prov.listCalls)
	assert.Equal(t, model.StatusPending, getBet(t, store, "future").Status)
}

// barrierProvider segura cada ListGames até que as duas passadas cheguem
type barrierProvider struct {
	*fakeProvider
	arrived sync.WaitGroup
}

func (p *barrierProvider) ListGames(ctx context.Context, date string) ([]model.Game, error) {
	p.arrived.Done()
	p.arrived.Wait()
	return p.fakeProvider.ListGames(ctx, date)
}

func TestConcurrentPassesSettleBetOnce(t *testing.T) {
	inner := newFakeProvider()
	inner.addGame(knicksCeltics("Final"))
	inner.addBox("g1", "towns", model.BoxScoreStat{Reb: 18, MinutesPlayed: 30})
	prov := &barrierProvider{fakeProvider: inner}
	prov.arrived.Add(2)
	store := repo.NewMemory(pending("b1", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))
	pub := &recordingPublisher{}

	reports := make([]Report, 2)
	var wg sync.WaitGroup
	for i := range reports {
		e := newEngine(t, store, prov)
		e.Publisher = pub
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := e.RunNormalCheck(context.Background(), model.DateScope{})
			assert.NoError(t, err)
			reports[i] = r
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, reports[0].Settled+reports[1].Settled)
	assert.Empty(t, reports[0].Issues)
	assert.Empty(t, reports[1].Issues)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "win", pub.events[0].Result)
	assert.Equal(t, model.OutcomeWin, getBet(t, store, "b1").Result)
}

func TestRecalculationDoesNotOverwriteConcurrentReset(t *testing.T) {
	l := propLeg("l1", "towns", "NYK", "BOS", "reb", 8, model.Over)
	tie := completed("b1", model.OutcomeLoss, settledLeg(l, model.OutcomeLoss, 8))
	store := repo.NewMemory(tie)
	e := newEngine(t, store, newFakeProvider())
	ctx := context.Background()

	// reset grava entre a leitura e a gravação do recálculo
	rep, err := e.ResetBets(ctx, day, day)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Reset)
	rb := newReport(ModeRecalculation, model.DateScope{From: day, To: day}, e.Clock.Now(), nil)
	e.recalcBet(ctx, rb, newGameSlate(e.Provider), tie)

	r := rb.build(e.Clock.Now())
	assert.Equal(t, 0, r.Changed)
	assert.Empty(t, r.Issues)
	b := getBet(t, store, "b1")
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, model.OutcomePending, b.Result)
}

func TestNormalCheckInvalidScope(t *testing.T) {
	e := newEngine(t, repo.NewMemory(), newFakeProvider())
	_, err := e.RunNormalCheck(context.Background(), model.DateScope{From: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestNormalCheckHooks(t *testing.T) {
	prov := newFakeProvider()
	prov.addGame(knicksCeltics("Scheduled"))
	store := repo.NewMemory(pending("b1", propLeg("l1", "towns", "NYK", "BOS", "reb", 7.5, model.Over)))
	e := newEngine(t, store, prov)

	var issues []IssueKind
	var passes []Mode
	e.Hooks = Hooks{
		OnIssue: func(k IssueKind) { issues = append(issues, k) },
		OnPass:  func(m Mode, _ time.Duration) { passes = append(passes, m) },
	}
	_, err := e.RunNormalCheck(context.Background(), model.DateScope{})
	require.NoError(t, err)
	assert.Equal(t, []IssueKind{IssueNotFinal}, issues)
	assert.Equal(t, []Mode{ModeNormalCheck}, passes)
}
