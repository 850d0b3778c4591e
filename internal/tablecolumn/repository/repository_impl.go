package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() columndomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cfg *columndomain.TableConfig) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO table_configs (
			id, name, description, columns, default_column_ids, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cfg.ID,
		cfg.Name,
		cfg.Description,
		cfg.Columns,
		cfg.DefaultColumnIDs,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*columndomain.TableConfig, error) {
	var cfg columndomain.TableConfig
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description, columns, default_column_ids, created_at, updated_at
		 FROM table_configs
		 WHERE id = ?`,
		id,
	).Scan(&cfg).Error
	if err != nil {
		return nil, err
	}
	if cfg.ID == 0 {
		return nil, nil
	}
	return &cfg, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]columndomain.TableConfig, error) {
	var items []columndomain.TableConfig
	err := db.WithContext(ctx).
		Model(&columndomain.TableConfig{}).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM table_configs WHERE id = ?`,
		id,
	).Error
}
