package documentrepo_test

import (
	"testing"
	"time"

	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence/documentrepo"
	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence/sqlitetest"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDocumentRepository(t *testing.T) {
	base := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

	newDoc := func(t *testing.T, orderID int64, name string, kind document.Kind, at time.Time) *document.Document {
		t.Helper()
		d, err := document.NewDocument(orderID, "3/"+name, name, kind, at)
		require.NoError(t, err)
		return d
	}

	t.Run("should assign ids and list in upload order", func(t *testing.T) {
		ctx := t.Context()
		repo := documentrepo.NewGormDocumentRepository(sqlitetest.Open(t))

		later := newDoc(t, 3, "invoice.pdf", document.KindDocument, base.Add(time.Hour))
		earlier := newDoc(t, 3, "photo_20250510_080000.jpg", document.KindPhoto, base)
		other := newDoc(t, 4, "waybill.pdf", document.KindDocument, base)
		for _, d := range []*document.Document{later, earlier, other} {
			require.NoError(t, repo.Add(ctx, d))
			assert.Positive(t, d.ID())
		}

		got, err := repo.ListForOrder(ctx, 3)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, earlier.ID(), got[0].ID())
		assert.Equal(t, document.KindPhoto, got[0].Kind())
		assert.Equal(t, "3/invoice.pdf", got[1].Path())
		assert.Equal(t, "invoice.pdf", got[1].Name())
	})

	t.Run("should return empty list for order without documents", func(t *testing.T) {
		repo := documentrepo.NewGormDocumentRepository(sqlitetest.Open(t))

		got, err := repo.ListForOrder(t.Context(), 100)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should refuse to add a stored document again", func(t *testing.T) {
		ctx := t.Context()
		repo := documentrepo.NewGormDocumentRepository(sqlitetest.Open(t))
		d := newDoc(t, 1, "act.pdf", document.KindDocument, base)
		require.NoError(t, repo.Add(ctx, d))

		require.ErrorIs(t, repo.Add(ctx, d), errs.ErrConflict)
	})
}
