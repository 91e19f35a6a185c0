package consumer

import (
	"context"
	"log/slog"
	"slices"

	"eventcare/internal/platform/kafka/consumer"
)

type TopicHandler interface {
	Handle(ctx context.Context, msg *consumer.Message) error
}

// Router dispatches records from the compliance and security topics to
// their handlers. Records on unregistered topics go to the fallback, or are
// logged and committed when there is none.
type Router struct {
	routes   map[string]TopicHandler
	fallback TopicHandler
	logger   *slog.Logger
}

func NewRouter(logger *slog.Logger, fallback TopicHandler) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{routes: map[string]TopicHandler{}, fallback: fallback, logger: logger}
}

func (r *Router) Register(topic string, handler TopicHandler) {
	r.routes[topic] = handler
}

// Topics lists the registered topics in order, for subscription.
func (r *Router) Topics() []string {
	topics := make([]string, 0, len(r.routes))
	for t := range r.routes {
		topics = append(topics, t)
	}
	slices.Sort(topics)
	return topics
}

func (r *Router) Handle(ctx context.Context, msg *consumer.Message) error {
	if h, ok := r.routes[msg.Topic]; ok {
		return h.Handle(ctx, msg)
	}
	if r.fallback != nil {
		return r.fallback.Handle(ctx, msg)
	}
	r.logger.WarnContext(ctx, "audit record on unrouted topic dropped",
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
	)
	return nil
}
