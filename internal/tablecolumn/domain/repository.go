package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository stores column config snapshots.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cfg *TableConfig) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*TableConfig, error)
	List(ctx context.Context, db *gorm.DB) ([]TableConfig, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
