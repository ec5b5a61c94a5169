// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"log/slog"
	"sync"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

const defaultWorkers = 4

// Screen fans the fetched articles out over a bounded worker pool and
// collects the qualifying results as they complete. Each task reads only its
// own record, so the workers share nothing but the channels. Completion
// order, not submission order, decides the result order; callers that need a
// stable report should sort.
func Screen(articles []types.RawArticle, cfg types.ScreenConfig, log *slog.Logger) []types.ScreenedArticle {
	if len(articles) == 0 {
		return nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(articles) {
		workers = len(articles)
	}

	tasks := make(chan types.RawArticle, workers)
	results := make(chan *types.ScreenedArticle, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for raw := range tasks {
				results <- ExtractArticle(raw, log)
			}
		}()
	}

	go func() {
		for _, raw := range articles {
			tasks <- raw
		}
		close(tasks)
		wg.Wait()
		close(results)
	}()

	var screened []types.ScreenedArticle
	for r := range results {
		if r != nil {
			screened = append(screened, *r)
		}
	}

	log.Info("screening complete",
		"fetched", len(articles),
		"qualified", len(screened),
		"workers", workers)
	return screened
}
