package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahifabooks/orderbot/internal/domain"
)

func newTestArchive(t *testing.T) (*Archive, string) {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "orders.toml")
	config := viper.New()
	config.Set("archive.path", archivePath)

	archive, err := NewArchive(config)
	require.NoError(t, err)
	return archive, archivePath
}

func testOrder(buyer string) domain.ArchivedOrder {
	return domain.ArchivedOrder{
		Buyer: buyer,
		Items: []domain.LineItem{
			{Name: "Pen", UnitPrice: 4500, Quantity: 10},
			{Name: "Notebook", UnitPrice: 12000, Quantity: 3},
		},
		GrandTotal:  81000,
		FinalizedAt: time.Date(2026, 3, 1, 14, 30, 5, 0, time.UTC),
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	archive, _ := newTestArchive(t)

	first := testOrder("Acme")
	second := testOrder("Globex")

	require.NoError(t, archive.Save(context.Background(), first))
	require.NoError(t, archive.Save(context.Background(), second))

	orders, err := archive.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ArchivedOrder{first, second}, orders)
}

func TestArchiveListMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	archive, _ := newTestArchive(t)

	orders, err := archive.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestArchiveAppendsAcrossInstances(t *testing.T) {
	t.Parallel()

	archivePath := filepath.Join(t.TempDir(), "orders.toml")

	config := viper.New()
	config.Set("archive.path", archivePath)
	first, err := NewArchive(config)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), testOrder("Acme")))

	config = viper.New()
	config.Set("archive.path", archivePath)
	second, err := NewArchive(config)
	require.NoError(t, err)
	require.NoError(t, second.Save(context.Background(), testOrder("Globex")))

	orders, err := second.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Acme", orders[0].Buyer)
	assert.Equal(t, "Globex", orders[1].Buyer)
}

func TestArchiveRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	archive, archivePath := newTestArchive(t)

	require.NoError(t, os.WriteFile(archivePath, []byte("version = 99\n"), 0o600))

	_, err := archive.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported orders schema version")
}

func TestArchiveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	archive, archivePath := newTestArchive(t)
	require.NoError(t, archive.Save(context.Background(), testOrder("Acme")))

	entries, err := os.ReadDir(filepath.Dir(archivePath))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "leftover temp file %s", entry.Name())
	}
}

func TestArchiveSaveHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	archive, _ := newTestArchive(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, archive.Save(ctx, testOrder("Acme")))
}
