package scan

import "fmt"

// ChannelFetchError reports a transport or backend failure while retrieving
// one channel's history. It is recovered locally: the channel is skipped and
// the run continues with other channels.
type ChannelFetchError struct {
	Channel string
	Err     error
}

// Error returns a formatted error message naming the failed channel.
func (e *ChannelFetchError) Error() string {
	return fmt.Sprintf("fetch channel %q: %v", e.Channel, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ChannelFetchError) Unwrap() error {
	return e.Err
}
