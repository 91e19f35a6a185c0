// Command audit-consumer materializes audit entries published to Kafka into
// the PostgreSQL audit table, or the SQLite file when DATABASE_URL is unset.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/twmb/franz-go/pkg/kgo"

	"eventcare/internal/platform/config"
	platformkafka "eventcare/internal/platform/kafka"
	"eventcare/internal/platform/kafka/consumer"
	"eventcare/internal/platform/logger"
	"eventcare/internal/platform/postgres"
	audit "eventcare/pkg/platform/audit"
	auditconsumer "eventcare/pkg/platform/audit/consumer"
	auditkafka "eventcare/pkg/platform/audit/publishers/kafka"
	auditpostgres "eventcare/pkg/platform/audit/store/postgres"
	auditsqlite "eventcare/pkg/platform/audit/store/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("audit consumer stopped", "error", err)
		os.Exit(1)
	}
	log.Info("audit consumer stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var sealer *audit.Sealer
	if cfg.Audit.SealKey != "" {
		if sealer, err = audit.NewSealer([]byte(cfg.Audit.SealKey)); err != nil {
			return err
		}
	}

	entries := auditconsumer.NewEntryHandler(store, sealer, log)
	router := auditconsumer.NewRouter(log, nil)
	for _, topic := range auditkafka.Topics(cfg.Kafka.TopicPrefix) {
		router.Register(topic, entries)
	}
	topics := router.Topics()

	cl, err := platformkafka.NewClient(ctx, platformkafka.Config{Brokers: cfg.Kafka.Brokers, ClientID: cfg.Kafka.ClientID + "-consumer"},
		kgo.ConsumerGroup(cfg.Kafka.ConsumerGroup),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return err
	}
	defer cl.Close()
	if err := platformkafka.EnsureTopics(ctx, cl, 3, 1, topics...); err != nil {
		return err
	}

	log.Info("audit consumer started", "topics", topics, "group", cfg.Kafka.ConsumerGroup)
	return consumer.New(cl, router, consumer.WithLogger(log)).Run(ctx)
}

func openStore(ctx context.Context, cfg config.Server) (auditconsumer.EntryStore, func(), error) {
	if cfg.Postgres.URL != "" {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return auditpostgres.New(db), func() { _ = db.Close() }, nil
	}

	db, err := auditsqlite.Open(ctx, auditsqlite.Config{Path: cfg.Audit.SQLitePath})
	if err != nil {
		return nil, nil, err
	}
	if err := auditsqlite.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	writer := auditsqlite.NewWriter(db)
	return auditsqlite.NewStore(db, writer), func() {
		writer.Close()
		_ = db.Close()
	}, nil
}
