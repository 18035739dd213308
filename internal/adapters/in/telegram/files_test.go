package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFileDownloader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/photo" {
			_, _ = w.Write([]byte("jpeg bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	api := newFakeAPI()
	api.fileURL = srv.URL
	d := NewHTTPFileDownloader(api)

	t.Run("downloads", func(t *testing.T) {
		data, err := d.Download(context.Background(), "photo")
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(data))
	})

	t.Run("reports bad status", func(t *testing.T) {
		_, err := d.Download(context.Background(), "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("reports unresolvable file", func(t *testing.T) {
		_, err := NewHTTPFileDownloader(newFakeAPI()).Download(context.Background(), "photo")
		require.Error(t, err)
	})
}
