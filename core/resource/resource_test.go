package resource_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"asset-loader/core/resource"
	"asset-loader/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(ctx context.Context, r *resource.Resource, report func(resource.Progress)) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, r *resource.Resource, report func(resource.Progress)) ([]byte, error) {
	return f(ctx, r, report)
}

func TestResource(t *testing.T) {
	t.Run("SuccessfulLoad", func(t *testing.T) {
		f := fetcherFunc(func(_ context.Context, _ *resource.Resource, report func(resource.Progress)) ([]byte, error) {
			report(resource.Progress{Loaded: 5, Total: 5})
			return []byte("hello"), nil
		})

		res := resource.New("greeting", "https://example.com/greeting.txt", resource.Options{}, f)

		var reports []resource.Progress
		res.OnProgress(func(p resource.Progress) { reports = append(reports, p) })
		completed := 0
		res.OnComplete(func(*resource.Resource) { completed++ })

		res.Load(context.Background())

		assert.Equal(t, []byte("hello"), res.Data)
		assert.NoError(t, res.Err)
		assert.True(t, res.IsComplete())
		assert.False(t, res.IsLoading())
		assert.Equal(t, 1, completed)
		require.Len(t, reports, 1)
		assert.Equal(t, int64(5), reports[0].Loaded)
	})

	t.Run("FailedLoadRecordsError", func(t *testing.T) {
		wantErr := errors.New("boom")
		f := fetcherFunc(func(context.Context, *resource.Resource, func(resource.Progress)) ([]byte, error) {
			return nil, wantErr
		})

		res := resource.New("broken", "https://example.com/broken", resource.Options{}, f)
		completed := 0
		res.OnComplete(func(*resource.Resource) { completed++ })

		res.Load(context.Background())

		assert.ErrorIs(t, res.Err, wantErr)
		assert.True(t, res.IsComplete())
		assert.Equal(t, 1, completed)
	})

	t.Run("SecondLoadDoesNotRefetch", func(t *testing.T) {
		fetches := 0
		f := fetcherFunc(func(context.Context, *resource.Resource, func(resource.Progress)) ([]byte, error) {
			fetches++
			return []byte("once"), nil
		})

		res := resource.New("once", "https://example.com/once", resource.Options{}, f)
		completed := 0
		res.OnComplete(func(*resource.Resource) { completed++ })

		res.Load(context.Background())
		res.Load(context.Background())

		assert.Equal(t, 1, fetches)
		assert.Equal(t, 2, completed)
	})

	t.Run("OptionsCarriedThrough", func(t *testing.T) {
		res := resource.New("opt", "/opt", resource.Options{
			CrossOrigin: true,
			LoadType:    resource.LoadTypeStorage,
			XhrType:     resource.XhrTypeJSON,
		}, nil)

		assert.True(t, res.Options.CrossOrigin)
		assert.Equal(t, resource.LoadTypeStorage, res.Options.LoadType)
		assert.Equal(t, resource.XhrTypeJSON, res.Options.XhrType)
	})
}

func TestHTTPFetcher(t *testing.T) {
	t.Run("DownloadWithProgress", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 100*1024)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		f := resource.NewHTTPFetcher(srv.Client())
		res := resource.New("big", srv.URL, resource.Options{}, f)

		var last resource.Progress
		data, err := f.Fetch(context.Background(), res, func(p resource.Progress) { last = p })
		require.NoError(t, err)

		assert.Equal(t, payload, data)
		assert.Equal(t, int64(len(payload)), last.Loaded)
		assert.Equal(t, int64(len(payload)), last.Total)
	})

	t.Run("Non2xxStatusIsError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		f := resource.NewHTTPFetcher(srv.Client())
		res := resource.New("missing", srv.URL+"/missing", resource.Options{}, f)

		_, err := f.Fetch(context.Background(), res, nil)
		assert.ErrorContains(t, err, "unexpected status")
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		f := resource.NewHTTPFetcher(srv.Client())
		res := resource.New("slow", srv.URL, resource.Options{}, f)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.Fetch(ctx, res, nil)
		assert.Error(t, err)
	})
}

func TestStorageFetcher(t *testing.T) {
	t.Run("DownloadUsesStatForTotal", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("StatObject", mock.Anything, "assets", "img/logo.png", mock.Anything).
			Return(minio.ObjectInfo{Size: 4}, nil)
		client.On("GetObject", mock.Anything, "assets", "img/logo.png", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("data"))), nil)

		f := resource.NewStorageFetcher(client, "assets")
		res := resource.New("logo", "img/logo.png", resource.Options{LoadType: resource.LoadTypeStorage}, f)

		var last resource.Progress
		data, err := f.Fetch(context.Background(), res, func(p resource.Progress) { last = p })
		require.NoError(t, err)

		assert.Equal(t, []byte("data"), data)
		assert.Equal(t, int64(4), last.Loaded)
		assert.Equal(t, int64(4), last.Total)
		client.AssertExpectations(t)
	})

	t.Run("StatFailureFallsBackToUnknownTotal", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("StatObject", mock.Anything, "assets", "a.bin", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("no stat"))
		client.On("GetObject", mock.Anything, "assets", "a.bin", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("ab"))), nil)

		f := resource.NewStorageFetcher(client, "assets")
		res := resource.New("a", "a.bin", resource.Options{}, f)

		var last resource.Progress
		data, err := f.Fetch(context.Background(), res, func(p resource.Progress) { last = p })
		require.NoError(t, err)

		assert.Equal(t, []byte("ab"), data)
		assert.Equal(t, int64(-1), last.Total)
	})

	t.Run("GetFailure", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("StatObject", mock.Anything, "assets", "gone", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("no stat"))
		client.On("GetObject", mock.Anything, "assets", "gone", mock.Anything).
			Return(nil, errors.New("not found"))

		f := resource.NewStorageFetcher(client, "assets")
		res := resource.New("gone", "gone", resource.Options{}, f)

		_, err := f.Fetch(context.Background(), res, nil)
		assert.ErrorContains(t, err, "failed to get object")
	})
}
