package tableregistry

import "go.uber.org/fx"

var Module = fx.Module("tableregistry",
	fx.Provide(New),
)
