package loader

// ConfigLoader abstracts where configuration key/value pairs come from.
type ConfigLoader interface {
	Load() (map[string]string, error)
}
