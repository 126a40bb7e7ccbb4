package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := Open(context.Background(), filepath.Join(t.TempDir(), "state.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(&testModel{}))
	return client
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.db")
	client, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "", nil)
	require.Error(t, err)
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client := newTestClient(t)
	db := client.DB()

	ctx := context.Background()
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rollback should leave the committed record only")
}
