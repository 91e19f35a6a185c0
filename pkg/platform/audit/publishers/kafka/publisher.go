// Package kafka ships audit entries to Kafka topics split by category. A
// consumer materializes them into the queryable store.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	audit "eventcare/pkg/platform/audit"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the subset of *kgo.Client used for publishing.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Topic returns the topic entries of category are published to.
func Topic(prefix string, category audit.EventCategory) string {
	if category != audit.CategorySecurity {
		category = audit.CategoryCompliance
	}
	return prefix + "." + string(category)
}

// Topics lists every topic the publisher writes to.
func Topics(prefix string) []string {
	return []string{Topic(prefix, audit.CategoryCompliance), Topic(prefix, audit.CategorySecurity)}
}

// Publisher is an audit.Sink that produces each entry synchronously, keyed
// by entry id so the consumer can deduplicate.
type Publisher struct {
	producer Producer
	prefix   string
}

func New(producer Producer, topicPrefix string) *Publisher {
	if topicPrefix == "" {
		topicPrefix = "eventcare.audit"
	}
	return &Publisher{producer: producer, prefix: topicPrefix}
}

func (p *Publisher) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	rec := &kgo.Record{
		Topic: Topic(p.prefix, entry.Action.Category()),
		Key:   []byte(entry.ID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(entry.Action)},
			{Key: "resource_kind", Value: []byte(entry.ResourceKind)},
		},
	}
	if err := p.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce audit entry: %w", err)
	}
	return nil
}
