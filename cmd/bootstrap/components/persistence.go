package components

import (
	"fmt"

	"barberslot/internal/infra/db"
	"barberslot/internal/infra/holdstore"
	"barberslot/internal/infra/readstore"
	"barberslot/internal/infra/uow"
	"barberslot/internal/pkg/clock"
	"barberslot/internal/pkg/config"
	"barberslot/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			readstore.New,
			fx.As(new(shared.Reads)),
		),
		uow.NewPostgresUoW,
		NewHoldStore,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewHoldStore selects the hold backend. Memory is only safe when a
// tenant shard is pinned to a single process; redis is the default for
// anything horizontally scaled.
func NewHoldStore(cfg config.Config, client *redis.Client, clk clock.Clock) (shared.HoldStore, error) {
	switch cfg.Holds.Backend {
	case "memory":
		return holdstore.NewMemoryStore(clk), nil
	case "redis":
		return holdstore.NewRedisStore(client, clk), nil
	default:
		return nil, fmt.Errorf("unknown holds backend: %q", cfg.Holds.Backend)
	}
}
