package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/gstdesk/internal/config"
	"github.com/smallbiznis/gstdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/gstdesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/gstdesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/gstdesk/internal/observability/tracing"
	"github.com/smallbiznis/gstdesk/internal/ocr"
	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
	"github.com/smallbiznis/gstdesk/internal/providers/pdf"
	"github.com/smallbiznis/gstdesk/internal/ratelimit"
	"github.com/smallbiznis/gstdesk/internal/tablecolumn"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
	"github.com/smallbiznis/gstdesk/internal/tableregistry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	tableregistry.Module,
	tablecolumn.Module,
	ocr.Module,
	ratelimit.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	registry       *tableregistry.Registry
	configSvc      columndomain.ConfigService
	extractor      ocrdomain.Extractor
	extractLimiter *ratelimit.ExtractLimiter
	pdfProvider    pdf.Provider
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	Registry       *tableregistry.Registry
	ConfigSvc      columndomain.ConfigService
	Extractor      ocrdomain.Extractor
	ExtractLimiter *ratelimit.ExtractLimiter `optional:"true"`
	PDFProvider    pdf.Provider
	ObsMetrics     *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("server"),
		registry:       p.Registry,
		configSvc:      p.ConfigSvc,
		extractor:      p.Extractor,
		extractLimiter: p.ExtractLimiter,
		pdfProvider:    p.PDFProvider,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	tables := v1.Group("/tables")
	{
		tables.POST("", s.CreateTable)
		tables.GET("", s.ListTables)
		tables.GET("/:table_id", s.GetTable)
		tables.DELETE("/:table_id", s.DropTable)
		tables.GET("/:table_id/summary", s.GetTableSummary)
		tables.PUT("/:table_id/interstate", s.SetInterState)
		tables.POST("/:table_id/validate", s.ValidateTable)
		tables.POST("/:table_id/import", s.ImportFromDocument)
		tables.GET("/:table_id/export.pdf", s.ExportTablePDF)

		rows := tables.Group("/:table_id/rows")
		{
			rows.POST("", s.AddRows)
			rows.PATCH("/:row_id", s.UpdateRow)
			rows.DELETE("/:row_id", s.DeleteRow)
			rows.POST("/:row_id/duplicate", s.DuplicateRow)
			rows.POST("/batch-delete", s.DeleteRows)
			rows.DELETE("", s.ClearAllRows)
		}

		columns := tables.Group("/:table_id/columns")
		{
			columns.GET("", s.ListColumns)
			columns.POST("", s.AddColumn)
			columns.PATCH("/:column_id", s.UpdateColumn)
			columns.DELETE("/:column_id", s.RemoveColumn)
			columns.PUT("/:column_id/move", s.MoveColumn)
			columns.PUT("/:column_id/visibility", s.ToggleColumnVisibility)
			columns.POST("/reset", s.ResetColumns)
			columns.POST("/apply", s.ApplyColumnConfig)
		}
	}

	configs := v1.Group("/table-configs")
	{
		configs.POST("", s.SaveTableConfig)
		configs.GET("", s.ListTableConfigs)
		configs.GET("/:config_id", s.GetTableConfig)
		configs.DELETE("/:config_id", s.DeleteTableConfig)
	}

	v1.POST("/ocr/extract", s.ExtractDocument)
}
