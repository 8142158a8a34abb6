package broadcast

import (
	"context"
	"meetsync/internal/models"
	"meetsync/internal/providers"

	json "github.com/goccy/go-json"
)

// Publisher fans a group notification out to its listeners.
type Publisher interface {
	Publish(ctx context.Context, groupID string, env models.Envelope) error
}

// LocalPublisher delivers straight to this process's Broadcaster.
type LocalPublisher struct {
	broadcaster *Broadcaster
	metrics     providers.MetricsProviderInterface
	logger      providers.Logger
}

func NewLocalPublisher(broadcaster *Broadcaster, metrics providers.MetricsProviderInterface, logger providers.Logger) *LocalPublisher {
	return &LocalPublisher{
		broadcaster: broadcaster,
		metrics:     metrics,
		logger:      logger,
	}
}

func (p *LocalPublisher) Publish(_ context.Context, groupID string, env models.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	p.deliver(groupID, data)
	return nil
}

func (p *LocalPublisher) deliver(groupID string, data []byte) {
	result := p.broadcaster.PublishRaw(groupID, data)
	p.metrics.AddBroadcastDelivered(result.Delivered)
	for i := 0; i < result.Skipped; i++ {
		p.metrics.IncBroadcastSkipped()
	}
	p.logger.Debugf(providers.TypeWs, "Group %s notified: %d delivered, %d skipped", groupID, result.Delivered, result.Skipped)
}
