package nws

import "fmt"

// FailureKind classifies why a fetch failed
type FailureKind string

const (
	KindRequest   FailureKind = "request"   // request could not be built
	KindTransport FailureKind = "transport" // network error
	KindTimeout   FailureKind = "timeout"
	KindStatus    FailureKind = "status" // non-2xx response
	KindDecode    FailureKind = "decode" // body was not the expected JSON
)

// FetchError is returned for every failed NWS request.
// Callers that only need success/failure can treat it as any error.
type FetchError struct {
	Kind       FailureKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("nws %s failure for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
