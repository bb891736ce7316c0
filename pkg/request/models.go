package request

import "net/http"

type Header http.Header

// Response is a read-only view of an HTTP response, holding the parts the
// tool renders.
type Response struct {
	// Proto is the protocol version of the response, such as HTTP/1.1.
	Proto string
	// StatusCode is the HTTP status code, such as 200, 301, 404 etc.
	StatusCode int
	// StatusPhrase is the phrase associated with the HTTP status code.
	StatusPhrase string
	// Headers of the response.
	Headers Header
	// Body is the raw response body.
	Body []byte
}

// ContentType returns the declared Content-Type header, or the empty string
// when the header is absent.
func (r *Response) ContentType() string {
	return http.Header(r.Headers).Get("Content-Type")
}
