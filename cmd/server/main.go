package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"kestrel/api/grpcserver"
	"kestrel/api/httpserver"
	"kestrel/api/wire"
	"kestrel/config"
	"kestrel/domain/orderbook"
	"kestrel/infra/archive"
	"kestrel/infra/kafka"
	"kestrel/infra/outbox"
	"kestrel/infra/sequence"
	"kestrel/infra/tape"
	"kestrel/jobs/broadcaster"
	"kestrel/jobs/gateway"
	"kestrel/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	// ---------------- Config ----------------

	cfg := config.Default()
	if path := os.Getenv("KESTREL_CONFIG"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			log.Fatalw("config load failed", "error", err)
		}
	}
	if cfg.Archive.DatabaseURL == "" {
		cfg.Archive.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	ins, err := cfg.Instrument.Build()
	if err != nil {
		log.Fatalw("instrument build failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- Tape ----------------

	tp, err := tape.Open(tape.Config{
		Dir:         cfg.Tape.Dir,
		SegmentSize: cfg.Tape.SegmentSize,
	})
	if err != nil {
		log.Fatalw("tape init failed", "error", err)
	}
	defer tp.Close()

	// The sequence resumes after the last journaled event, so event
	// numbering stays strictly increasing across restarts.
	lastSeq, err := tape.Scan(cfg.Tape.Dir, func(*tape.Record) error { return nil })
	if err != nil {
		log.Fatalw("tape scan failed", "error", err)
	}
	seq := sequence.New(lastSeq)

	// ---------------- Outbox ----------------

	ob, err := outbox.Open(cfg.Outbox.Dir)
	if err != nil {
		log.Fatalw("outbox init failed", "error", err)
	}
	defer ob.Close()

	// ---------------- Archive ----------------

	opts := service.Options{Symbol: ins.Symbol, Tape: tp, Outbox: ob}

	if cfg.Archive.DatabaseURL != "" {
		pool, err := archive.NewPool(ctx, cfg.Archive.DatabaseURL)
		if err != nil {
			log.Fatalw("archive pool init failed", "error", err)
		}
		defer pool.Close()

		arch := archive.New(pool, log.Named("archive"))
		arch.Start(ctx)
		opts.Archiver = arch
	}

	// ---------------- Service ----------------

	book := orderbook.NewOrderBook()
	svc := service.NewOrderService(book, seq, log.Named("service"), opts)

	// ---------------- Kafka ----------------

	if cfg.Kafka.Enabled {
		producer, err := broadcaster.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Fatalw("kafka producer init failed", "error", err)
		}
		bc := broadcaster.New(ob, producer, cfg.Kafka.EventTopic, cfg.Kafka.DrainInterval.Std(), log.Named("broadcaster"))
		defer bc.Close()
		bc.Start(ctx)

		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.CommandGroup, cfg.Kafka.CommandTopic)
		defer consumer.Close()

		dlq := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.DeadLetterTopic)
		defer dlq.Close()

		gw := gateway.New(consumer, svc, ins, dlq, log.Named("gateway"))
		gw.Start(ctx)
	}

	// ---------------- HTTP ----------------

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httpserver.NewServer(svc, ins, log.Named("http")).Router(),
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server exited", "error", err)
		}
	}()

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatalw("grpc listen failed", "error", err)
	}

	grpcSrv := grpc.NewServer()
	wire.RegisterOrderEntryServer(grpcSrv, grpcserver.NewServer(svc, log.Named("grpc")))
	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatalw("grpc server exited", "error", err)
		}
	}()

	log.Infow("kestrel engine running",
		"instrument", ins.Symbol,
		"grpc", cfg.GRPC.Addr,
		"http", cfg.HTTP.Addr,
		"kafka", cfg.Kafka.Enabled,
		"seq", lastSeq,
	)

	// ---------------- Shutdown ----------------

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Std())
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("http shutdown failed", "error", err)
	}
	grpcSrv.GracefulStop()
}
