package charts

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/sirupsen/logrus"
)

// Render builds and writes charts with at most jobs workers, taking them in
// the order of cs. The first failure cancels the charts not yet started.
// Every chart that was written is returned in the order of cs, together with
// the first error.
func Render(ctx context.Context, cs []Chart, cfg *config.Config, r *chart.Renderer, jobs int) ([]chart.Output, error) {
	if jobs < 1 {
		jobs = 1
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outputs := make([]chart.Output, len(cs))
	var (
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	queue := make(chan int)
	go func() {
		defer close(queue)
		for i := range cs {
			select {
			case queue <- i:
			case <-runCtx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if runCtx.Err() != nil {
					continue
				}
				out, err := renderOne(cs[idx], cfg, r)
				if err != nil {
					fail(err)
					continue
				}
				outputs[idx] = out
			}
		}()
	}
	wg.Wait()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	written := outputs[:0]
	for _, o := range outputs {
		if o.Name != "" {
			written = append(written, o)
		}
	}
	return written, firstErr
}

func renderOne(c Chart, cfg *config.Config, r *chart.Renderer) (chart.Output, error) {
	log := r.Log.WithFields(logrus.Fields{"chart": c.Name, "group": c.Group})
	fig, err := c.Build(cfg)
	if err != nil {
		return chart.Output{}, fmt.Errorf("building %s: %w", c.Name, err)
	}
	log.Debug("figure built")
	return r.Render(fig)
}
