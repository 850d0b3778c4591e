package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstdesk/internal/config"
	"github.com/smallbiznis/gstdesk/internal/migration"
	"github.com/smallbiznis/gstdesk/internal/observability"
	"github.com/smallbiznis/gstdesk/internal/server"
	"github.com/smallbiznis/gstdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
