package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// fakeReader entrega as mensagens em ordem e depois bloqueia até o cancelamento
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	drained   chan struct{}
}

func newFakeReader(values ...string) *fakeReader {
	r := &fakeReader{drained: make(chan struct{})}
	for i, v := range values {
		r.msgs = append(r.msgs, kafka.Message{Offset: int64(i), Key: []byte("g"), Value: []byte(v)})
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	if len(r.msgs) == 0 {
		select {
		case <-r.drained:
		default:
			close(r.drained)
		}
	}
	return nil
}

type fakeChecker struct {
	mu     sync.Mutex
	scopes []model.DateScope
	fails  int
}

func (f *fakeChecker) RunNormalCheck(_ context.Context, scope model.DateScope) (engine.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, scope)
	if f.fails > 0 {
		f.fails--
		return engine.Report{}, errors.New("store down")
	}
	return engine.Report{PassID: "p", Settled: 1}, nil
}

type fakeDLQ struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (d *fakeDLQ) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msgs = append(d.msgs, msgs...)
	return nil
}

func run(t *testing.T, c *GameFinalConsumer, r *fakeReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-r.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestGameFinalTriggersNormalCheckForThatDay(t *testing.T) {
	r := newFakeReader(`{"game_id":"g1","date":"2025-12-03","status":"Final"}`)
	chk := &fakeChecker{}
	consumed := 0
	c := &GameFinalConsumer{Log: zap.NewNop(), Reader: r, Checker: chk, OnConsumed: func() { consumed++ }}

	run(t, c, r)
	assert.Equal(t, []model.DateScope{{From: "2025-12-03", To: "2025-12-03"}}, chk.scopes)
	assert.Equal(t, []int64{0}, r.committed)
	assert.Equal(t, 1, consumed)
}

func TestGameFinalSkipsNonFinalStatus(t *testing.T) {
	r := newFakeReader(`{"game_id":"g1","date":"2025-12-03","status":"In Progress"}`)
	chk := &fakeChecker{}
	c := &GameFinalConsumer{Log: zap.NewNop(), Reader: r, Checker: chk}

	run(t, c, r)
	assert.Empty(t, chk.scopes)
	assert.Equal(t, []int64{0}, r.committed)
}

func TestGameFinalBadPayloadGoesToDLQ(t *testing.T) {
	r := newFakeReader(`not json`, `{"game_id":"g2","status":"Final"}`, `{"game_id":"g3","date":"03/12/2025"}`)
	chk := &fakeChecker{}
	dlq := &fakeDLQ{}
	var stages []string
	c := &GameFinalConsumer{Log: zap.NewNop(), Reader: r, Checker: chk, DLQ: dlq, OnError: func(s string) { stages = append(stages, s) }}

	run(t, c, r)
	assert.Empty(t, chk.scopes)
	assert.Len(t, dlq.msgs, 3)
	assert.Equal(t, []string{"decode", "decode", "decode"}, stages)
	assert.Equal(t, []int64{0, 1, 2}, r.committed)
}

func TestGameFinalRetriesThenDeadLetters(t *testing.T) {
	r := newFakeReader(`{"game_id":"g1","date":"2025-12-03","status":"Final"}`, `{"game_id":"g2","date":"2025-12-04","status":"Final"}`)
	chk := &fakeChecker{fails: 3}
	dlq := &fakeDLQ{}
	c := &GameFinalConsumer{Log: zap.NewNop(), Reader: r, Checker: chk, DLQ: dlq, Retries: 2, Backoff: time.Millisecond}

	run(t, c, r)
	// três falhas esgotam o primeiro evento; o segundo passa de primeira
	require.Len(t, chk.scopes, 4)
	assert.Equal(t, "2025-12-04", chk.scopes[3].From)
	require.Len(t, dlq.msgs, 1)
	assert.JSONEq(t, `{"game_id":"g1","date":"2025-12-03","status":"Final"}`, string(dlq.msgs[0].Value))
	assert.Equal(t, []int64{0, 1}, r.committed)
}
