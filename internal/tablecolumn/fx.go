package tablecolumn

import (
	"github.com/smallbiznis/gstdesk/internal/tablecolumn/repository"
	"github.com/smallbiznis/gstdesk/internal/tablecolumn/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tablecolumn.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewConfigService),
)
