package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/musicstore/internal/adapter/stream"
	"github.com/rl1809/musicstore/internal/config"
	"github.com/rl1809/musicstore/internal/core/domain"
	"github.com/rl1809/musicstore/internal/core/service"
	"github.com/rl1809/musicstore/internal/logging"
)

const (
	sid           = "S1"
	initialStock  = 10
	supplyCopies  = 5
	oversellCount = 20
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "smoke: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		ServiceName: "musicstore",
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	queueSize := 0
	if cfg.Feed.Enabled {
		queueSize = cfg.Feed.QueueSize
	}
	store := service.NewMusicStore(logger, queueSize)

	var wg sync.WaitGroup
	if cfg.Feed.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Feed.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.Feed.RedisAddr))

		publisher := stream.NewRedisAdapter(rdb, cfg.Feed.Stream, cfg.Feed.MaxLen)
		for i := 0; i < cfg.Feed.Workers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				service.RunFeedWorker(id, store.Events(), publisher, cfg.Feed.PublishTimeout, logger)
			}(i)
		}
		logger.Info("started feed workers", zap.Int("count", cfg.Feed.Workers))
	}

	scenarioErr := runScenario(store, logger)

	store.Close()
	wg.Wait()
	logger.Info("feed workers stopped")

	return scenarioErr
}

func runScenario(store *service.MusicStore, logger *zap.Logger) error {
	store.AddDisc(sid, "Kind of Blue", "Miles Davis", decimal.RequireFromString("9.99"), decimal.RequireFromString("4.99"), initialStock)
	store.AddDisc("S2", "Blue Train", "John Coltrane", decimal.RequireFromString("11.50"), decimal.RequireFromString("6.00"), 3)

	disc, _ := store.SearchBySID(sid)
	disc.AddSong("So What")
	disc.AddSong("Freddie Freeloader")

	if err := store.SupplyDisc(sid, supplyCopies); err != nil {
		return err
	}
	if err := store.SellDisc(sid, oversellCount); !errors.Is(err, domain.ErrInsufficientStock) {
		return fmt.Errorf("expected insufficient stock on oversell, got %v", err)
	}
	if err := store.SellDisc(sid, initialStock+supplyCopies); err != nil {
		return err
	}
	if err := store.SellDisc("missing", 1); !errors.Is(err, domain.ErrDiscNotFound) {
		return fmt.Errorf("expected disc not found, got %v", err)
	}

	if disc.Quantity() != 0 || disc.CopiesSold() != initialStock+supplyCopies {
		return fmt.Errorf("unexpected disc state: quantity=%d sold=%d", disc.Quantity(), disc.CopiesSold())
	}

	worst, ok := store.WorstSellingDisc()
	if !ok || worst.SID != "S2" {
		return fmt.Errorf("expected S2 as worst seller, got %v", worst)
	}

	logger.Info("scenario passed",
		zap.Int("discs", store.Len()),
		zap.String("worst_selling", worst.SID),
		zap.Int("by_artist", len(store.SearchByArtist("Miles Davis"))),
	)
	fmt.Println(disc)
	return nil
}
