// Package exitcode provides standardized exit codes for modman
package exitcode

// Exit codes for the modman CLI
const (
	Success       = 0
	GeneralError  = 1
	ConfigError   = 2
	ManifestError = 3
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ManifestError:
		return "Manifest error"
	default:
		return "Unknown error"
	}
}
