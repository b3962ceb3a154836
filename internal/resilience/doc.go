// Package resilience provides reliability patterns for the reporter's
// external calls: circuit breakers for channel history backends and webhook
// deliveries, and retry logic with exponential backoff and jitter.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ChannelFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchHistory()
//	})
//
//	err := retry.WithBackoff(ctx, retry.ChannelFetchConfig(), func() error {
//	    return performOperation()
//	})
package resilience
