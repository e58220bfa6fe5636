package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"barberslot/internal/infra/db"
	"barberslot/internal/infra/dispatch"
	"barberslot/internal/infra/repository"
	"barberslot/internal/pkg/config"
	"barberslot/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewOutboxQueue,
		NewWebhookSender,
		NewLivePublisher,
		dispatch.NewWorker,
	),
	fx.Invoke(StartWorker),
)

func NewOutboxQueue(dbtx db.DBTX) dispatch.Queue {
	return repository.NewOutboxRepository(dbtx)
}

func NewWebhookSender(cfg config.Config) *dispatch.WebhookSender {
	return dispatch.NewWebhookSender(cfg.Dispatch.WebhookURL, cfg.Dispatch.HTTPTimeout)
}

func NewLivePublisher(cfg config.Config, client *redis.Client) *dispatch.LivePublisher {
	return dispatch.NewLivePublisher(client, cfg.Dispatch.LiveChannel)
}

// StartWorker schedules the outbox drain and the hold sweep on one cron
// runner tied to the fx lifecycle.
func StartWorker(
	lc fx.Lifecycle,
	cfg config.Config,
	worker *dispatch.Worker,
	holds shared.HoldStore,
	logger *slog.Logger,
) error {
	runner := cron.New()

	drainSpec := fmt.Sprintf("@every %s", cfg.Dispatch.DrainInterval)
	if _, err := runner.AddFunc(drainSpec, func() {
		worker.DrainOnce(context.Background())
	}); err != nil {
		return err
	}

	if _, err := runner.AddFunc(cfg.Dispatch.SweepSpec, func() {
		removed, err := holds.Sweep(context.Background())
		if err != nil {
			logger.Warn("hold sweep failed", "error", err)
			return
		}
		if removed > 0 {
			logger.Info("swept expired holds", "removed", removed)
		}
	}); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start()
			logger.Info("dispatch worker started",
				"drain_interval", cfg.Dispatch.DrainInterval.String(),
				"sweep_spec", cfg.Dispatch.SweepSpec)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := runner.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})

	return nil
}
