package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/storage/memory"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T, kv *memory.KV, opts Options) *Store {
	t.Helper()
	opts.PINHashCost = bcrypt.MinCost
	s := New(kv, logger.NewNop(), opts)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoad_DemoSeed(t *testing.T) {
	s := newTestStore(t, memory.New(), Options{SeedDemoData: true})

	s.View(func(d *Data) {
		assert.Len(t, d.Products, 15)
		assert.Len(t, d.Categories, 5)
		assert.Len(t, d.Users, 4)
		assert.Empty(t, d.Transactions)
		assert.Empty(t, d.Printers)
		assert.Len(t, d.Recipes["p5"], 3)
		assert.True(t, d.Settings.TaxPercent.Equal(decimal.NewFromInt(11)))

		p, ok := d.FindProduct("p12")
		require.True(t, ok)
		assert.Equal(t, "French Fries", p.Name)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(d.Users[2].PINHash), []byte("9012")))
	})
}

func TestLoad_EmptyCatalogBootstrapsAdmin(t *testing.T) {
	s := newTestStore(t, memory.New(), Options{BootstrapPIN: "4321"})

	s.View(func(d *Data) {
		assert.Empty(t, d.Products)
		require.Len(t, d.Users, 1)
		assert.Equal(t, model.RoleAdmin, d.Users[0].Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(d.Users[0].PINHash), []byte("4321")))
	})
}

func TestLoad_PersistedDocumentsReplaceDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Save(ctx, KeyProductIngredients, []byte(`{"p9":[{"ingredient_id":"ing3","qty":"5"}]}`)))
	require.NoError(t, kv.Save(ctx, KeyInvoiceSequence, []byte(`{"date":"20240301","seq":7}`)))

	s := newTestStore(t, kv, Options{SeedDemoData: true})

	s.View(func(d *Data) {
		assert.Len(t, d.Recipes, 1, "persisted recipes must not merge with demo recipes")
		assert.Equal(t, 7, d.Invoice.Seq)
		assert.Len(t, d.Products, 15, "absent keys keep their defaults")
	})
}

func TestLoad_CorruptDocument(t *testing.T) {
	kv := memory.New()
	require.NoError(t, kv.Save(context.Background(), KeyProducts, []byte(`{not json`)))

	s := New(kv, logger.NewNop(), Options{PINHashCost: bcrypt.MinCost})
	assert.ErrorContains(t, s.Load(context.Background()), "decode pos_products")
}

func TestUpdate_FailureLeavesStateUntouched(t *testing.T) {
	kv := memory.New()
	s := newTestStore(t, kv, Options{SeedDemoData: true})

	boom := errors.New("boom")
	err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Products[0].Stock = 0
		tx.Products = tx.Products[:1]
		tx.Touch(KeyProducts)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s.View(func(d *Data) {
		assert.Len(t, d.Products, 15)
		assert.Equal(t, 100, d.Products[0].Stock)
	})
	assert.Empty(t, kv.Keys())
}

func TestUpdate_PersistsTouchedKeysAndNotifies(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newTestStore(t, kv, Options{SeedDemoData: true})

	var got []string
	unsubscribe := s.Subscribe(func(keys []string) { got = keys })

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		tx.Products[0].Stock = 42
		tx.Touch(KeyProducts)
		return nil
	}))
	assert.Equal(t, []string{KeyProducts}, got)

	raw, err := kv.Load(ctx, KeyProducts)
	require.NoError(t, err)
	var products []model.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	assert.Equal(t, 42, products[0].Stock)

	unsubscribe()
	got = nil
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		tx.Touch(KeySettings)
		return nil
	}))
	assert.Nil(t, got)
}

func TestUpdate_PersistFailureKeepsMemoryState(t *testing.T) {
	kv := memory.New()
	var failed []string
	s := newTestStore(t, kv, Options{
		SeedDemoData:   true,
		OnPersistError: func(key string, err error) { failed = append(failed, key) },
	})
	kv.FailSave = errors.New("disk full")

	err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Products[1].Stock = 1
		tx.Touch(KeyProducts, KeyStockMovements)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{KeyProducts, KeyStockMovements}, failed)
	s.View(func(d *Data) {
		assert.Equal(t, 1, d.Products[1].Stock)
	})
}

func TestUpdate_ConcurrentWritersSerialize(t *testing.T) {
	s := newTestStore(t, memory.New(), Options{SeedDemoData: true})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(context.Background(), func(tx *Tx) error {
				tx.Products[0].Stock--
				tx.Touch(KeyProducts)
				return nil
			})
		}()
	}
	wg.Wait()

	s.View(func(d *Data) {
		assert.Equal(t, 50, d.Products[0].Stock)
	})
}

func TestNow_UsesStoreTimezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	fixed := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	s := New(memory.New(), logger.NewNop(), Options{Location: jakarta, Clock: func() time.Time { return fixed }})

	assert.Equal(t, 2, s.Now().Day())
}

func TestClone_IsIndependent(t *testing.T) {
	d, err := demoData(time.Now(), bcrypt.MinCost)
	require.NoError(t, err)

	cp := d.Clone()
	cp.Recipes["p1"][0].IngredientID = "changed"
	cp.Categories[0].Name = "changed"

	assert.Equal(t, "ing1", d.Recipes["p1"][0].IngredientID)
	assert.Equal(t, "Kopi", d.Categories[0].Name)
}
