package components

import (
	"time"

	"barberslot/internal/pkg/clock"
	"barberslot/internal/pkg/config"
	"barberslot/internal/usecase"
	"barberslot/internal/usecase/commands"
	"barberslot/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSchedulingLocation,
)

// NewSchedulingLocation loads the shop-local timezone slots are
// generated in.
func NewSchedulingLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Scheduling.TimeZone)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewHoldCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
