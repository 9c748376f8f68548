package notification

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module wires the logging dispatcher as the Dispatcher implementation.
var Module = fx.Provide(func(logger *slog.Logger) Dispatcher {
	return NewLogDispatcher(logger)
})
