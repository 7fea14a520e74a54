package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/bingwall/internal/storage"
	"github.com/tanq16/bingwall/internal/utils"
	"golang.org/x/sync/errgroup"
)

// ImageFetcher returns the full body behind url.
type ImageFetcher func(ctx context.Context, url string) ([]byte, error)

type Summary struct {
	Downloaded int
	Bytes      int64
}

type Downloader struct {
	fetch   ImageFetcher
	store   storage.Store
	workers int
}

// NewDownloader bounds the pool to workers goroutines, or to the CPU count
// when workers is not positive.
func NewDownloader(fetch ImageFetcher, store storage.Store, workers int) *Downloader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Downloader{fetch: fetch, store: store, workers: workers}
}

func (d *Downloader) Workers() int {
	return d.workers
}

// FilterMissing drops descriptors whose file already exists in store. Order is
// kept. The check is a snapshot; nothing stops the store changing afterwards.
func FilterMissing(ctx context.Context, descriptors []utils.Descriptor, store storage.Store) ([]utils.Descriptor, error) {
	missing := make([]utils.Descriptor, 0, len(descriptors))
	for _, desc := range descriptors {
		exists, err := store.Exists(ctx, desc.FileName)
		if err != nil {
			return nil, err
		}
		if exists {
			log.Debug().Str("op", "scheduler").Str("file", store.Location(desc.FileName)).Msg("Already present, skipping")
			continue
		}
		missing = append(missing, desc)
	}
	return missing, nil
}

// DownloadAll fetches and stores every descriptor. The first failure cancels
// the rest and is returned; files written before it stay in place.
func (d *Downloader) DownloadAll(ctx context.Context, descriptors []utils.Descriptor) (Summary, error) {
	var downloaded, written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for _, desc := range descriptors {
		if gctx.Err() != nil {
			break
		}
		desc := desc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := d.fetch(gctx, desc.SourceURL)
			if err != nil {
				return fmt.Errorf("error downloading %s: %w", desc.FileName, err)
			}
			if err := d.store.Write(gctx, desc.FileName, data); err != nil {
				return err
			}
			downloaded.Add(1)
			written.Add(int64(len(data)))
			log.Info().Str("op", "scheduler").Str("file", d.store.Location(desc.FileName)).Int("bytes", len(data)).Msg("Image saved")
			return nil
		})
	}

	err := g.Wait()
	summary := Summary{Downloaded: int(downloaded.Load()), Bytes: written.Load()}
	if err != nil {
		log.Error().Str("op", "scheduler").Err(err).Int("saved", summary.Downloaded).Msg("Download batch aborted")
		return summary, err
	}
	return summary, nil
}
