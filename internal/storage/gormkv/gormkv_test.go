package gormkv

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-register-service/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_SQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	kv, err := Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	_, err = kv.Load(ctx, "pos_transactions")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Save(ctx, "pos_transactions", []byte(`[]`)))
	require.NoError(t, kv.Save(ctx, "pos_transactions", []byte(`[{"id":"t1"}]`)))

	got, err := kv.Load(ctx, "pos_transactions")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t1"}]`, string(got))

	var count int64
	require.NoError(t, kv.db.Model(&document{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported driver")
}
