// Package resilience provides retry and rate limiting for outbound
// requests.
//
// This package includes:
//   - Retry: retries failed operations with exponential backoff
//   - RateLimiter: controls request rate with a token bucket
//
// The patterns compose:
//
//	rl := resilience.NewRateLimiter(resilience.DefaultRateLimiterConfig("api"))
//
//	result, err := resilience.Retry(ctx, cfg, func() (*Response, error) {
//	    if err := rl.Wait(ctx); err != nil {
//	        return nil, err
//	    }
//	    return doRequest()
//	})
package resilience
