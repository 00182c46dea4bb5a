package util

// Ptr returns a pointer to the given value.
// The LSP protocol types take pointers for most optional fields; this keeps
// the call sites readable.
func Ptr[T any](v T) *T {
	return &v
}
