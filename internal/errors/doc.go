// Package errors provides coded, structured errors for hashroute.
//
// Every error carries a short code (e.g. "R001") that maps to a registered
// template with a category, a one-line message and a longer explanation.
// Errors wrap their cause so errors.Is and errors.As keep working:
//
//	err := errors.New("R001").
//	    WithDetail(`no route for "/missing"`).
//	    Wrap(router.ErrNoMatch)
//
//	fmt.Println(err.Format())
//	// ERROR R001: No route matched
//	//
//	//   no route for "/missing"
//	//
//	//   Hint: Declare a router.Default entry to render a fallback page.
//
// # Categories
//
//   - routing: path matching failures
//   - protocol: malformed or rejected bridge messages
//   - config: configuration loading and validation
//   - cli: command-line usage
package errors
