package catalog

// ErrorCode defines error types for catalog lookups
type ErrorCode string

const (
	// UnknownSource is returned when a logical name is not in the catalog
	UnknownSource ErrorCode = "UnknownSource"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
