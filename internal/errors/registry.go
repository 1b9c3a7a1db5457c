package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Config Errors (E100-E149)
	// ============================================

	"E101": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Detail:     "No vmkit.json was found at the given location.",
		Suggestion: "Create vmkit.json or omit --config to use the defaults.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "vmkit.json could not be parsed as JSON.",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "Invalid server port",
		Suggestion: `Set "server.port" to a value between 1 and 65535.`,
	},
	"E104": {
		Category:   CategoryConfig,
		Message:    "Invalid API timeout",
		Suggestion: `Use a Go duration for "api.timeout", e.g. "15s".`,
	},
	"E105": {
		Category:   CategoryConfig,
		Message:    "Invalid API base URL",
		Suggestion: `Set "api.baseURL" to an absolute http or https URL.`,
	},
	"E106": {
		Category:   CategoryConfig,
		Message:    "Invalid log settings",
		Suggestion: `Use "debug", "info", "warn" or "error" for "log.level" and "text" or "json" for "log.format".`,
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Config file could not be written",
	},
	"E108": {
		Category:   CategoryConfig,
		Message:    "Config file already exists",
		Suggestion: "Pass --force to overwrite it.",
	},

	// ============================================
	// Fixture Errors (E150-E199)
	// ============================================

	"E150": {
		Category: CategoryFixtures,
		Message:  "Fixture file could not be read",
	},
	"E151": {
		Category: CategoryFixtures,
		Message:  "Invalid fixture file",
		Detail:   "The fixture file could not be parsed as YAML.",
	},
	"E152": {
		Category: CategoryFixtures,
		Message:  "Duplicate account in fixtures",
		Detail:   "Each account email may appear only once.",
	},

	// ============================================
	// Network Errors (E200-E249)
	// ============================================

	"E201": {
		Category: CategoryNetwork,
		Message:  "Could not create API client",
	},

	// ============================================
	// CLI Errors (E250-E299)
	// ============================================

	"E250": {
		Category: CategoryCLI,
		Message:  "Sign-in failed",
	},
	"E251": {
		Category: CategoryCLI,
		Message:  "Loading users failed",
	},
	"E252": {
		Category: CategoryCLI,
		Message:  "Form is invalid",
	},
	"E253": {
		Category: CategoryCLI,
		Message:  "Server stopped unexpectedly",
	},
	"E254": {
		Category: CategoryCLI,
		Message:  "Prompt aborted",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
