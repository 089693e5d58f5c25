package aggregate

import (
	"context"
	"fmt"
	"time"

	"marketdata/internal/provider"
)

// TTLListingRetry is how long a failed listing download is remembered, so a
// broken listing source is not hit on every KR miss.
const TTLListingRetry = 60 * time.Second

// Listing returns the KR code -> company name table.
func (s *Service) Listing(ctx context.Context) (map[string]string, error) {
	if s.src.Listing == nil {
		return nil, fmt.Errorf("%w: no listing source configured", provider.ErrUpstreamUnavailable)
	}
	names, err := s.listing(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s listing", provider.ErrUpstreamUnavailable, s.src.Listing.Name())
	}
	return names, nil
}

// listing caches a failed download as an empty table for TTLListingRetry.
func (s *Service) listing(ctx context.Context) (map[string]string, error) {
	return load(ctx, s, KeyListingKRX, func(ctx context.Context) (map[string]string, time.Duration, error) {
		src := s.src.Listing
		names, err := runChain(ctx, s.log, s.timeout, DomainListing, src.Name(), []step[map[string]string]{{
			source: src.Name(),
			call: func(ctx context.Context) (map[string]string, error) {
				m, err := src.FetchListing(ctx)
				if err != nil {
					return nil, err
				}
				if len(m) == 0 {
					return nil, fmt.Errorf("%w: empty listing", provider.ErrNoData)
				}
				return m, nil
			},
		}})
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, err
			}
			return map[string]string{}, TTLListingRetry, nil
		}
		return names, TTLListing, nil
	})
}

// krName resolves ticker to a company name, echoing the ticker on any failure.
func (s *Service) krName(ctx context.Context, ticker string) string {
	if s.src.Listing == nil {
		return ticker
	}
	names, err := s.listing(ctx)
	if err != nil {
		return ticker
	}
	if name, ok := names[ticker]; ok && name != "" {
		return name
	}
	return ticker
}
