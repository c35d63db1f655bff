package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/db"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/memstore"
	"github.com/danielhkuo/voteledger/middleware"
	"github.com/danielhkuo/voteledger/redisstore"
	"github.com/danielhkuo/voteledger/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the record store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "store", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Store ready", "store", cfg.DatabaseType)

	l := ledger.New(store, cfg.ProgramID, slog.Default())

	// Create router
	mux := router.NewRouter(l, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "program", l.Program())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured ledger.Store and a function releasing it
func openStore(cfg cliparse.Config) (ledger.Store, func(), error) {
	switch cfg.DatabaseType {
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db.NewStore(conn, cfg.DatabaseType, slog.Default()), func() { conn.Close() }, nil

	case cliparse.StoreRedis:
		client, err := redisstore.Connect(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(client, redisstore.DefaultPrefix, slog.Default()), func() { client.Close() }, nil

	case cliparse.StoreMemory:
		slog.Warn("memory store selected; records are lost on exit")
		return memstore.NewStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.DatabaseType)
	}
}
