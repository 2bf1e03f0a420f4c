package appconf

import "time"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// Config holds the application-level settings parsed from command-line flags.
type Config struct {
	Name          string
	Port          int
	Env           Environment
	ApiKeys       []string
	AdminApiKeys  []string
	RateLimit     int
	SweepInterval time.Duration
	Verbose       bool
}

// EnvFlagToEnvironment converts an environment flag value to the Environment enum.
// Unrecognized values fall back to Development.
func EnvFlagToEnvironment(envFlag string) Environment {
	switch envFlag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}
