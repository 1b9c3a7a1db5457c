// Package errors provides coded, actionable errors for the vmkit CLI and
// its configuration layer.
//
// Each error code maps to a registered template with a category, a short
// message and a longer explanation:
//
//	err := errors.New("E103").
//	    WithDetail("port 70000 is out of range").
//	    WithSuggestion(`Set "server.port" to a value between 1 and 65535`)
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E103: Invalid server port
//	//
//	//   port 70000 is out of range
//	//
//	//   Hint: Set "server.port" to a value between 1 and 65535
//
// View-model status errors are plain strings and do not use this package.
package errors
