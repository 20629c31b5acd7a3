package fetchers

// ErrorCode defines error types for remote fetch operations
type ErrorCode string

const (
	// NetworkFailure represents transport-level errors (timeout, connection refused)
	NetworkFailure ErrorCode = "NetworkFailure"

	// RemoteStatus represents a non-success HTTP status from a remote endpoint
	RemoteStatus ErrorCode = "RemoteStatus"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
