package imagestore

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendora/storefront/config"
)

type stubUploader struct {
	calls  int64
	failOn string
}

func (u *stubUploader) Upload(_ context.Context, file File) (string, error) {
	atomic.AddInt64(&u.calls, 1)
	if file.Name == u.failOn {
		return "", errors.Errorf("upload %s failed", file.Name)
	}
	return "https://img.example/" + file.Name, nil
}

func TestUploadAll_PreservesInputOrder(t *testing.T) {
	uploader := &stubUploader{}
	store, err := NewStore(uploader, 2)
	require.NoError(t, err)
	defer store.Release()

	files := make([]File, 8)
	for i := range files {
		files[i] = File{Name: fmt.Sprintf("img-%d.jpg", i), Data: []byte{byte(i)}}
	}

	urls, err := store.UploadAll(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, urls, len(files))
	for i, url := range urls {
		assert.Equal(t, fmt.Sprintf("https://img.example/img-%d.jpg", i), url)
	}
	assert.Equal(t, int64(len(files)), atomic.LoadInt64(&uploader.calls))
}

func TestUploadAll_AnyFailureAbortsBatch(t *testing.T) {
	uploader := &stubUploader{failOn: "img-2.jpg"}
	store, err := NewStore(uploader, 4)
	require.NoError(t, err)
	defer store.Release()

	files := []File{
		{Name: "img-0.jpg"}, {Name: "img-1.jpg"}, {Name: "img-2.jpg"}, {Name: "img-3.jpg"},
	}
	urls, err := store.UploadAll(context.Background(), files)
	assert.Error(t, err)
	assert.Nil(t, urls, "no partial results")
}

func TestUploadAll_Empty(t *testing.T) {
	store, err := NewStore(&stubUploader{}, 2)
	require.NoError(t, err)
	defer store.Release()

	urls, err := store.UploadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestHTTPUploader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unsigned_preset", r.FormValue("upload_preset"))
		assert.Equal(t, "front.jpg", r.FormValue("filename"))
		fmt.Fprintf(w, `{"secure_url":"https://img.example/hosted/front.jpg"}`)
	}))
	defer srv.Close()

	uploader := NewHTTPUploader(config.ImageStoreConfig{
		UploadUrl:    srv.URL,
		UploadPreset: "unsigned_preset",
	})
	url, err := uploader.Upload(context.Background(), File{Name: "front.jpg", Data: []byte("jpegdata")})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/hosted/front.jpg", url)
}

func TestHTTPUploader_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	uploader := NewHTTPUploader(config.ImageStoreConfig{UploadUrl: srv.URL, UploadPreset: "p"})
	_, err := uploader.Upload(context.Background(), File{Name: "front.jpg", Data: []byte{1}})
	assert.Error(t, err)
}
