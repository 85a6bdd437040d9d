package feed

import "fmt"

// FetchError indicates the feed document could not be retrieved:
// network failure, timeout, or a non-success HTTP status.
// It is fatal for a reconciliation run.
type FetchError struct {
	// URL is the feed location that failed.
	URL string
	// StatusCode is the HTTP status, if a response was received.
	StatusCode int
	// Err is the underlying transport error, if any.
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch feed %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch feed %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SchemaError indicates the fetched document does not match any of the
// recognized feed shapes. The root element name is kept for diagnostics.
// It is fatal for a reconciliation run.
type SchemaError struct {
	// Root is the top-level element name of the rejected document.
	Root string
	// Err is the underlying parse error for documents that are not
	// well-formed XML at all.
	Err error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unrecognized feed document: %v", e.Err)
	}
	return fmt.Sprintf("unrecognized feed structure: root element %q", e.Root)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
