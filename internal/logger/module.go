package logger

import "go.uber.org/fx"

// Module exposes the JSON logger to the fx graph.
var Module = fx.Provide(New)
