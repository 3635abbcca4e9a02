package imagestore

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/core"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/trendora/storefront/config"
)

const uploadTimeout = 60 * time.Second

// File is an in-memory image to upload.
type File struct {
	Name string
	Data []byte
}

// Uploader pushes a single image to the hosting service and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// HTTPUploader performs unsigned multipart uploads to the hosting service.
type HTTPUploader struct {
	uploadURL string
	preset    string
}

func NewHTTPUploader(cfg config.ImageStoreConfig) *HTTPUploader {
	return &HTTPUploader{uploadURL: cfg.UploadUrl, preset: cfg.UploadPreset}
}

func (u *HTTPUploader) Upload(ctx context.Context, file File) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	var (
		result struct {
			SecureURL string `json:"secure_url"`
		}
		code int
	)
	err := gout.POST(u.uploadURL).
		WithContext(ctx).
		SetForm(gout.H{
			"upload_preset": u.preset,
			"filename":      file.Name,
			"file":          core.FormMem(file.Data),
		}).
		BindJSON(&result).
		Code(&code).
		Do()
	if err != nil {
		return "", errors.Wrapf(err, "upload %s failed", file.Name)
	}
	if code != http.StatusOK {
		return "", errors.Errorf("image host returned status %d for %s", code, file.Name)
	}
	if result.SecureURL == "" {
		return "", errors.Errorf("image host returned empty url for %s", file.Name)
	}
	return result.SecureURL, nil
}

// Store fans uploads out over a fixed worker pool and joins the results.
// Any single failure aborts the whole batch; there is no partial success.
type Store struct {
	uploader Uploader
	pool     *ants.Pool
}

func NewStore(uploader Uploader, workers int) (*Store, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create upload pool")
	}
	return &Store{uploader: uploader, pool: pool}, nil
}

// UploadAll uploads every file concurrently and returns URLs in input order.
func (s *Store) UploadAll(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i := range files {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			url, err := s.uploader.Upload(ctx, files[i])
			urls[i] = url
			errs[i] = err
		}
		if err := s.pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = errors.Wrap(err, "submit upload task")
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			zap.L().Error("image upload failed",
				zap.String("file", files[i].Name),
				zap.Error(err))
			return nil, err
		}
	}
	return urls, nil
}

// Release shuts the worker pool down.
func (s *Store) Release() {
	s.pool.Release()
}
