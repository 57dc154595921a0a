package config

// Environment selects how storage is created
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment maps a string to an Environment, defaulting to production
func ParseEnvironment(value string) Environment {
	switch Environment(value) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}
