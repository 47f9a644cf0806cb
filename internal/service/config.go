package service

// ServiceConfig is the business layer configuration.
type ServiceConfig struct {
	User UserServiceConfig
	Note NoteServiceConfig
}

// UserServiceConfig holds account related settings.
type UserServiceConfig struct {
	// RegisterIsEnable toggles open registration.
	RegisterIsEnable bool
}

// NoteServiceConfig holds note related settings.
type NoteServiceConfig struct {
	// ShareBaseURL prefixes generated share links, e.g.
	// "https://notes.example.com".
	ShareBaseURL string
	// ExploreLimit caps the public feed size. Defaults to 50.
	ExploreLimit int
	// PopularTagLimit caps the popular tag list. Defaults to 10.
	PopularTagLimit int
}

const (
	defaultExploreLimit    = 50
	defaultPopularTagLimit = 10
)

// exploreLimit returns the configured public feed cap.
func (c *ServiceConfig) exploreLimit() int {
	if c == nil || c.Note.ExploreLimit <= 0 {
		return defaultExploreLimit
	}
	return c.Note.ExploreLimit
}

// popularTagLimit returns the configured popular tag cap.
func (c *ServiceConfig) popularTagLimit() int {
	if c == nil || c.Note.PopularTagLimit <= 0 {
		return defaultPopularTagLimit
	}
	return c.Note.PopularTagLimit
}
