package progress

import "io"

// Reporter shows activity while a request is in flight.
type Reporter interface {
	io.Closer

	// Start reports that a request has been sent.
	Start(method string, url string)

	// Done reports that the response arrived and rendering is about to
	// begin.
	Done()
}
