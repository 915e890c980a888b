package httpclient

import "context"

// Response is the part of an HTTP response the crawler reads.
type Response interface {
	Body() []byte
	StatusCode() int
	// FinalURL is the address that served the body once redirects were followed.
	// Empty when the transport does not know it.
	FinalURL() string
}

// Client issues GET requests for article pages. Implementations must stop
// when ctx is done.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
