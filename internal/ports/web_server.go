package ports

// WebServer defines the interface for the inbound HTTP surface
type WebServer interface {
	// Start starts serving requests
	Start() error

	// Stop shuts the server down gracefully
	Stop() error
}
