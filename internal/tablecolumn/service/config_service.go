package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  columndomain.Repository
}

// ConfigService persists named column snapshots so users can restore a
// customized layout later.
type ConfigService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  columndomain.Repository
}

func NewConfigService(p Params) columndomain.ConfigService {
	return &ConfigService{
		db:    p.DB,
		log:   p.Log.Named("tablecolumn.config"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *ConfigService) Save(ctx context.Context, req columndomain.SaveConfigRequest) (*columndomain.ConfigResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, columndomain.ErrInvalidName
	}

	columnsJSON, err := json.Marshal(req.Columns)
	if err != nil {
		return nil, err
	}
	defaultIDs := req.DefaultColumnIDs
	if defaultIDs == nil {
		defaultIDs = []string{}
	}
	defaultIDsJSON, err := json.Marshal(defaultIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cfg := &columndomain.TableConfig{
		ID:               s.genID.Generate(),
		Name:             name,
		Description:      req.Description,
		Columns:          datatypes.JSON(columnsJSON),
		DefaultColumnIDs: datatypes.JSON(defaultIDsJSON),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, cfg); err != nil {
		return nil, err
	}

	s.log.Info("table config saved",
		zap.String("config_id", cfg.ID.String()),
		zap.String("name", cfg.Name),
		zap.Int("columns", len(req.Columns)),
	)
	return s.toResponse(cfg)
}

func (s *ConfigService) Get(ctx context.Context, id string) (*columndomain.ConfigResponse, error) {
	configID, err := columndomain.ParseID(id)
	if err != nil {
		return nil, columndomain.ErrInvalidID
	}

	cfg, err := s.repo.FindByID(ctx, s.db, configID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, columndomain.ErrNotFound
	}
	return s.toResponse(cfg)
}

func (s *ConfigService) List(ctx context.Context) ([]columndomain.ConfigResponse, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]columndomain.ConfigResponse, 0, len(items))
	for i := range items {
		out, err := s.toResponse(&items[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *out)
	}
	return resp, nil
}

func (s *ConfigService) Delete(ctx context.Context, id string) error {
	configID, err := columndomain.ParseID(id)
	if err != nil {
		return columndomain.ErrInvalidID
	}

	cfg, err := s.repo.FindByID(ctx, s.db, configID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return columndomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, configID)
}

func (s *ConfigService) toResponse(cfg *columndomain.TableConfig) (*columndomain.ConfigResponse, error) {
	var columns []columndomain.ColumnDefinition
	if len(cfg.Columns) > 0 {
		if err := json.Unmarshal(cfg.Columns, &columns); err != nil {
			return nil, err
		}
	}

	defaultIDs := []string{}
	if len(cfg.DefaultColumnIDs) > 0 {
		if err := json.Unmarshal(cfg.DefaultColumnIDs, &defaultIDs); err != nil {
			return nil, err
		}
	}

	return &columndomain.ConfigResponse{
		ID:               cfg.ID.String(),
		Name:             cfg.Name,
		Description:      cfg.Description,
		Columns:          columns,
		DefaultColumnIDs: defaultIDs,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}, nil
}
