package feed

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/gracechapel/site-api/internal/youtube"
	"github.com/gracechapel/site-api/pkg/logger"
)

var resolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "site_api_feed_resolutions_total",
		Help: "Feed resolution cycles by path and provenance.",
	},
	[]string{"path", "provenance"},
)

// Provider is the slice of the YouTube client the service needs. Tests
// substitute their own implementation.
type Provider interface {
	Aggregate(ctx context.Context) (*youtube.ChannelFeed, error)
	PlaylistItems(ctx context.Context) ([]youtube.Item, error)
}

// Service runs resolution cycles. All provider failures are absorbed here and
// converted into a mock-backed resolution; callers always receive a renderable
// feed.
type Service struct {
	provider Provider
	logger   *zap.Logger
}

// NewService creates a feed resolution service.
func NewService(provider Provider, log *zap.Logger) *Service {
	if log == nil {
		if logger.Log != nil {
			log = logger.Log
		} else {
			log = zap.NewNop()
		}
	}
	return &Service{provider: provider, logger: log}
}

// ResolveChannel runs one channel resolution cycle: aggregate the three
// searches, apply the priority policy, fall back to the mock dataset on any
// provider or transport failure.
func (s *Service) ResolveChannel(ctx context.Context) Resolution {
	cf, err := s.provider.Aggregate(ctx)
	if err != nil {
		s.logFallback("channel", err)
		resolutionsTotal.WithLabelValues("channel", string(ProvenanceMock)).Inc()
		return MockResolution()
	}

	res := Resolve(cf)
	resolutionsTotal.WithLabelValues("channel", string(res.Provenance)).Inc()
	return res
}

// ResolvePlaylist runs one playlist resolution cycle with the same fallback
// contract as the channel path.
func (s *Service) ResolvePlaylist(ctx context.Context) Resolution {
	items, err := s.provider.PlaylistItems(ctx)
	if err != nil {
		s.logFallback("playlist", err)
		resolutionsTotal.WithLabelValues("playlist", string(ProvenanceMock)).Inc()
		return MockResolution()
	}

	res := ResolvePlaylist(items)
	resolutionsTotal.WithLabelValues("playlist", string(res.Provenance)).Inc()
	return res
}

func (s *Service) logFallback(path string, err error) {
	var provErr *youtube.ProviderError

	switch {
	case errors.Is(err, youtube.ErrMissingConfig):
		s.logger.Info("provider not configured, serving mock feed",
			zap.String("path", path),
		)
	case errors.As(err, &provErr):
		s.logger.Warn("provider reported an error, serving mock feed",
			zap.String("path", path),
			zap.String("provider_source", provErr.Source),
			zap.Int("provider_code", provErr.Code),
			zap.String("provider_message", provErr.Message),
		)
	default:
		s.logger.Warn("feed aggregation failed, serving mock feed",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
