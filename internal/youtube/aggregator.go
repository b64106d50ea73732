package youtube

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// source names double as the fixed provider-error check order.
const (
	sourceLive     = "live"
	sourceUploads  = "uploads"
	sourcePastLive = "past-live"
)

// queryResult is the settled outcome of one of the three channel queries.
type queryResult struct {
	payload *searchResponse
	err     error
}

// Aggregate issues the live, past-live and uploads searches concurrently and
// waits for all three to settle; one source failing must not hide data from
// the others. It returns the first error found, checking embedded provider
// errors in the order live, uploads, past-live before transport failures.
func (c *Client) Aggregate(ctx context.Context) (*ChannelFeed, error) {
	if !c.Configured() {
		return nil, ErrMissingConfig
	}

	urls := map[string]string{
		sourceLive:     c.searchURL("live", 1),
		sourcePastLive: c.searchURL("completed", c.maxPastLive),
		sourceUploads:  c.searchURL("", c.maxUploads),
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]queryResult, len(urls))
	)

	for source, u := range urls {
		wg.Add(1)
		go func(source, u string) {
			defer wg.Done()
			resp, err := c.query(ctx, u)
			mu.Lock()
			results[source] = queryResult{payload: resp, err: err}
			mu.Unlock()
		}(source, u)
	}
	wg.Wait()

	for _, source := range []string{sourceLive, sourceUploads, sourcePastLive} {
		res := results[source]
		if res.err != nil {
			continue
		}
		if res.payload.Error != nil {
			return nil, &ProviderError{
				Source:  source,
				Code:    res.payload.Error.Code,
				Message: res.payload.Error.Message,
			}
		}
	}

	for _, source := range []string{sourceLive, sourceUploads, sourcePastLive} {
		if res := results[source]; res.err != nil {
			return nil, res.err
		}
	}

	feed := &ChannelFeed{
		Live:     toItems(results[sourceLive].payload.Items),
		PastLive: toItems(results[sourcePastLive].payload.Items),
		Uploads:  toItems(results[sourceUploads].payload.Items),
	}

	c.logger.Debug("channel queries settled",
		zap.Int("live", len(feed.Live)),
		zap.Int("past_live", len(feed.PastLive)),
		zap.Int("uploads", len(feed.Uploads)),
	)

	return feed, nil
}
