package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dataflowhq/piper"
	"github.com/dataflowhq/piper/internal/metrics"
	"github.com/dataflowhq/piper/queueredis"
)

// buildDemoPipeline wires a small two-stage pipeline — double, then format —
// used by both the run and tree subcommands, so the tree command shows
// exactly the shape run drives.
func buildDemoPipeline(cfg *cliConfig) (*piper.Instance, error) {
	double := piper.Leaf("double", func(self *piper.Instance, batch []any, args ...any) {
		for _, item := range batch {
			n, ok := item.(int)
			if !ok {
				self.WARN("dropping non-int item", item)
				continue
			}
			self.Emit(n * 2)
		}
	})

	format := piper.Leaf("format", func(self *piper.Instance, batch []any, args ...any) {
		for _, item := range batch {
			self.Emit(fmt.Sprintf("%v", item))
		}
	})

	root := piper.Container("main", double, format)
	if cfg.Debug != 0 {
		root.WithDebug(cfg.Debug)
	}

	opts := []piper.ConfigOption{
		piper.WithDefaultBatchSize(cfg.BatchSize),
		piper.WithDefaultVerbose(cfg.Verbose),
	}

	if cfg.Redis.Enabled {
		opts = append(opts, piper.WithQueueFactory(redisFactory(cfg.Redis.Addr)))
	}

	if cfg.Metrics.Enabled {
		opts = append(opts, piper.WithMetrics(metrics.NewCollector(nil)))
	}

	return piper.Build(root, piper.NewConfig(opts...))
}

func redisFactory(addr string) piper.QueueFactory {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return queueredis.NewFactory(context.Background(), client, "piper:demo")
}
