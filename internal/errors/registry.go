package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Routing (R001-R099)
	"R001": {
		Category:   CategoryRouting,
		Message:    "No route matched",
		Suggestion: "Declare a router.Default entry to render a fallback page.",
	},

	// Bridge protocol (B001-B099)
	"B001": {
		Category: CategoryProtocol,
		Message:  "Invalid bridge message",
	},
	"B002": {
		Category:   CategoryProtocol,
		Message:    "Client rate limit exceeded",
		Suggestion: "Raise bridge.eventsPerSecond or bridge.burst in the configuration.",
	},
	"B003": {
		Category: CategoryProtocol,
		Message:  "Event handler not found",
	},

	// Configuration (C001-C099)
	"C001": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create hashroute.json or hashroute.yaml, or run without --config.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be parsed",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},

	// CLI (X001-X099)
	"X001": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
