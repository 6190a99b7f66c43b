package producer

import (
	"context"

	"github.com/radieske/bet-settlement-engine/internal/shared/kafka"
	"github.com/radieske/bet-settlement-engine/pkg/contracts/events"
)

// KafkaPublisher publica bet_settled com a aposta como chave,
// mantendo a ordem dos eventos de uma mesma aposta
type KafkaPublisher struct {
	W         kafka.MessageWriter
	OnPublish func()
	OnError   func(string)
}

func NewKafkaPublisher(w kafka.MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{W: w}
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	if err := kafka.PublishJSON(ctx, p.W, e.BetID, e); err != nil {
		if p.OnError != nil {
			p.OnError("publish")
		}
		return err
	}
	if p.OnPublish != nil {
		p.OnPublish()
	}
	return nil
}
