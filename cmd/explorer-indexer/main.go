// Package main runs the explorer: the indexing loop, the query API and the gRPC health service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/cursor"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/mirror"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/processor"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/query"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/service"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/storage"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type config struct {
	Network        model.Network `long:"network" env:"EXPLORER_NETWORK" description:"network name (mainnet, testnet, signet, regtest)" default:"mainnet"`
	RPCURL         string        `long:"rpc-url" env:"EXPLORER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser        string        `long:"rpc-user" env:"EXPLORER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword    string        `long:"rpc-password" env:"EXPLORER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCTimeout     time.Duration `long:"rpc-timeout" env:"EXPLORER_RPC_TIMEOUT" description:"timeout of a single RPC call" default:"30s"`
	RPCConcurrency int64         `long:"rpc-concurrency" env:"EXPLORER_RPC_CONCURRENCY" description:"max in-flight RPC calls" default:"8"`
	RPCRateLimit   int           `long:"rpc-rate-limit" env:"EXPLORER_RPC_RATE_LIMIT" description:"max RPC calls per second, 0 disables" default:"200"`
	RetryBaseDelay time.Duration `long:"retry-base-delay" env:"EXPLORER_RETRY_BASE_DELAY" description:"first retry delay, doubled per attempt" default:"500ms"`
	RetryAttempts  int           `long:"retry-attempts" env:"EXPLORER_RETRY_ATTEMPTS" description:"attempts per RPC call on transient errors" default:"5"`
	DataDir        string        `long:"data-dir" env:"EXPLORER_DATA_DIR" description:"pebble data directory" default:"data/explorer"`
	NoSync         bool          `long:"no-sync" env:"EXPLORER_NO_SYNC" description:"skip fsync on block writes (initial sync only)"`
	MaxReorgDepth  int64         `long:"max-reorg-depth" env:"EXPLORER_MAX_REORG_DEPTH" description:"deepest reorg recovered automatically" default:"100"`
	StartHeight    int64         `long:"start-height" env:"EXPLORER_START_HEIGHT" description:"first height indexed into an empty store" default:"0"`
	DecodeWorkers  int           `long:"decode-workers" env:"EXPLORER_DECODE_WORKERS" description:"parallel transaction decoders per block, 0 uses the CPU count"`
	PollInterval   time.Duration `long:"poll-interval" env:"EXPLORER_POLL_INTERVAL" description:"delay after a failed advance" default:"5s"`
	IdleInterval   time.Duration `long:"idle-interval" env:"EXPLORER_IDLE_INTERVAL" description:"tip poll interval without a block signal" default:"1m"`
	ZMQAddr        string        `long:"zmq-addr" env:"EXPLORER_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint (binary built with -tags zmq)"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"EXPLORER_CLICKHOUSE_DSN" description:"ClickHouse DSN of the analytics mirror, empty disables it"`
	HTTPAddr       string        `long:"http-addr" env:"EXPLORER_HTTP_ADDR" description:"query API and metrics address" default:":8001"`
	GRPCAddr       string        `long:"grpc-addr" env:"EXPLORER_GRPC_ADDR" description:"gRPC health address" default:":8000"`
	DevLog         bool          `long:"dev-log" env:"EXPLORER_DEV_LOG" description:"human readable debug logging"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg.DevLog)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("explorer indexer failed", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	logger = logger.With(zap.String("network", string(cfg.Network)))

	params, err := bitcoin.ChainParams(cfg.Network)
	if err != nil {
		return err
	}
	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return err
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := bitcoin.NewRPCClient(rpcClient, metrics.NewRPCClient(cfg.Network), bitcoin.RPCClientConfig{
		CallTimeout:    cfg.RPCTimeout,
		MaxConcurrency: cfg.RPCConcurrency,
		RateLimit:      cfg.RPCRateLimit,
	})
	node := bitcoin.NewNode(rpc, bitcoin.NewRetrier(cfg.RetryBaseDelay, cfg.RetryAttempts, logger), params)

	store, err := storage.Open(storage.Config{Dir: cfg.DataDir, NoSync: cfg.NoSync}, metrics.NewStorage(cfg.Network), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close storage", zap.Error(err))
		}
	}()

	proc := processor.NewBlockProcessor(store, decoder, cfg.Network, cfg.DecodeWorkers, metrics.NewProcessor(cfg.Network), logger)
	indexerMetrics := metrics.NewIndexer(cfg.Network)
	health := transport.NewHealthReporter()
	observers := []cursor.Observer{indexerMetrics, health}

	if cfg.ClickhouseDSN != "" {
		m, closeMirror, err := startMirror(cfg, store, logger)
		if err != nil {
			return err
		}
		defer closeMirror()
		observers = append(observers, m)
	}

	cur := cursor.New(node, proc, store, cursor.Config{
		MaxReorgDepth: cfg.MaxReorgDepth,
		StartHeight:   cfg.StartHeight,
	}, logger, observers...)
	if err := cur.Load(ctx); err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}
	indexer, err := service.NewIndexerService(cur, indexerMetrics, cfg.Network, service.IndexerConfig{
		PollInterval: cfg.PollInterval,
		IdleInterval: cfg.IdleInterval,
	}, logger, blockSignal)
	if err != nil {
		return err
	}

	nodeSource := query.NewNodeSource(node, decoder, params)
	source := query.NewFallbackSource(query.NewIndexedSource(store), nodeSource, logger)
	router := transport.NewRouter(transport.NewExplorerHandler(source, nodeSource, cur, logger), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runIndexer(gctx, indexer, health, logger)
	})
	g.Go(func() error {
		return serveHTTP(gctx, cfg.HTTPAddr, cors.Default().Handler(router), logger)
	})
	g.Go(func() error {
		return serveGRPC(gctx, cfg.GRPCAddr, health, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type (
	indexRunner interface {
		Run(ctx context.Context) error
	}
	indexHalter interface {
		Halt()
	}
)

// runIndexer runs the indexing loop. A reorg deeper than the bound stops indexing
// only; the query API and health service keep serving what is indexed.
func runIndexer(ctx context.Context, indexer indexRunner, health indexHalter, logger *zap.Logger) error {
	err := indexer.Run(ctx)
	if errors.Is(err, chain.ErrDeepReorg) {
		logger.Error("indexing halted, manual intervention required", zap.Error(err))
		health.Halt()
		return nil
	}
	return err
}

// startMirror connects the ClickHouse mirror and starts catching it up with the
// index. The returned func drains pending rows and closes the connection.
func startMirror(cfg config, source mirror.Source, logger *zap.Logger) (*mirror.Mirror, func(), error) {
	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository(cfg.Network))
	if err != nil {
		return nil, nil, fmt.Errorf("init clickhouse repository: %w", err)
	}
	m, err := mirror.New(repo, source, metrics.NewMirror(cfg.Network), mirror.Config{}, logger)
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	m.Start(context.Background())
	return m, func() {
		m.Stop()
		if err := repo.Close(); err != nil {
			logger.Error("close clickhouse repository", zap.Error(err))
		}
	}, nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func serveGRPC(ctx context.Context, addr string, health *transport.HealthReporter, logger *zap.Logger) error {
	interceptors := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(interceptors...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	healthpb.RegisterHealthServer(grpcServer, health.Server())
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		health.Shutdown()
		grpcServer.GracefulStop()
	}()

	logger.Info("Starting gRPC server", zap.String("addr", addr))
	if err := grpcServer.Serve(socket); err != nil {
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host + parsed.Path,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   parsed.Scheme == "http",
	}, nil)
}
