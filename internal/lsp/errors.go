package lsp

// AlreadyInitializedError occurs when Initialize is called on a client that is
// already bound to a UI shell.
type AlreadyInitializedError struct{}

func (e *AlreadyInitializedError) Error() string {
	return "language client is already initialized"
}

// NotInitializedError occurs when an operation needs a client that has not
// been initialized yet.
type NotInitializedError struct {
	Operation string
}

func (e *NotInitializedError) Error() string {
	return "language client is not initialized: cannot " + e.Operation
}

// ClosedError occurs when a client is used after Shutdown.
type ClosedError struct{}

func (e *ClosedError) Error() string {
	return "language client is shut down"
}
