// Package app provides the application container holding every
// dependency and service.
package app

// Build information, injected at link time.
var (
	Version   string = "0.1.0"
	GitTag    string = "dev"
	BuildTime string = "1970-01-01T00:00:00+0000"
)

const (
	// Name is the service name.
	Name = "Note Hub Service"
)
