package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
	"github.com/smallbiznis/gstdesk/internal/tablecolumn/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newConfigService(t *testing.T) columndomain.ConfigService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	db.Exec(`CREATE TABLE table_configs (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		columns TEXT NOT NULL,
		default_column_ids TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	return NewConfigService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestSaveAndGetConfig(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()

	desc := "compact layout"
	saved, err := svc.Save(ctx, columndomain.SaveConfigRequest{
		Name:        "Compact",
		Description: &desc,
		Columns: []columndomain.ColumnDefinition{
			{ID: snowflake.ID(1), FieldName: "description", FieldType: columndomain.FieldTypeTextarea, Order: 1, Visible: true},
			{ID: snowflake.ID(2), FieldName: "quantity", FieldType: columndomain.FieldTypeNumber, Order: 2, Visible: true},
		},
		DefaultColumnIDs: []string{"1", "2"},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Compact", saved.Name)
	assert.Len(t, saved.Columns, 2)

	got, err := svc.Get(ctx, saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "compact layout", *got.Description)
	assert.Equal(t, "quantity", got.Columns[1].FieldName)
	assert.Equal(t, []string{"1", "2"}, got.DefaultColumnIDs)
}

func TestSaveConfigRejectsBlankName(t *testing.T) {
	svc := newConfigService(t)

	_, err := svc.Save(context.Background(), columndomain.SaveConfigRequest{Name: "   "})
	assert.ErrorIs(t, err, columndomain.ErrInvalidName)
}

func TestListConfigs(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, columndomain.SaveConfigRequest{Name: "First"})
	assert.NoError(t, err)
	_, err = svc.Save(ctx, columndomain.SaveConfigRequest{Name: "Second"})
	assert.NoError(t, err)

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeleteConfig(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, columndomain.SaveConfigRequest{Name: "Doomed"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, saved.ID))

	_, err = svc.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, columndomain.ErrNotFound)
}

func TestConfigUnknownID(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-snowflake")
	assert.ErrorIs(t, err, columndomain.ErrInvalidID)

	_, err = svc.Get(ctx, snowflake.ID(987654321).String())
	assert.ErrorIs(t, err, columndomain.ErrNotFound)

	err = svc.Delete(ctx, snowflake.ID(987654321).String())
	assert.ErrorIs(t, err, columndomain.ErrNotFound)
}
