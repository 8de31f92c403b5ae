package image_renderer

import (
	"sync"

	"go.uber.org/zap"

	"letteravatar/internal/avatar"
)

// Warmup renders every avatar of list that is not cached yet, using at most
// workers concurrent renders. It returns the number of avatars rendered.
func (r *Renderer) Warmup(list []avatar.Options, workers int) int {
	r.logger.Info("Starting avatar warmup", zap.Int("avatars", len(list)))

	// Worker pool size defaults to 1
	if workers <= 0 {
		workers = 1
	}

	workerChan := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	rendered, skipped := 0, 0

	for _, opts := range list {
		if r.IsCached(opts) {
			skipped++
			continue
		}

		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(opts avatar.Options) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			if _, err := r.Render(opts); err != nil {
				r.logger.Debug("Warmup avatar failed", zap.String("text", opts.Text), zap.Error(err))
				return
			}
			mu.Lock()
			rendered++
			mu.Unlock()
		}(opts)
	}

	wg.Wait()
	r.logger.Info("Avatar warmup completed", zap.Int("rendered", rendered), zap.Int("skipped", skipped))
	return rendered
}
