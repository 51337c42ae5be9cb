package job

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchFunc fetches one keyword
type FetchFunc func(ctx context.Context, keyword string) FetchResult

// SinkFunc receives each keyword's result. It is called concurrently
// from workers and must be safe for that.
type SinkFunc func(keyword string, res FetchResult)

// Dispatch drains keywords with a pool of workers. At most workers
// fetches run at once. Cancelling ctx stops workers from taking new
// keywords; Dispatch returns once every worker has exited.
func Dispatch(ctx context.Context, keywords []string, workers int, fetch FetchFunc, sink SinkFunc) error {
	if len(keywords) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(keywords) {
		workers = len(keywords)
	}

	queue := make(chan string, len(keywords))
	for _, kw := range keywords {
		queue <- kw
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for kw := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				sink(kw, fetch(gctx, kw))
			}
			return nil
		})
	}

	return g.Wait()
}
