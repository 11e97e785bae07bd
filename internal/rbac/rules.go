package rbac

import "strings"

// alwaysAllowedPaths are reachable by any authenticated user regardless of
// role permissions.
var alwaysAllowedPaths = map[string]struct{}{
	"/dashboard":       {},
	"/login.html":      {},
	"/password_change": {},
	"/auth/logout":     {},
	"/":                {},
}

// AlwaysAllowed reports whether the path is on the fixed allow-list.
func AlwaysAllowed(path string) bool {
	_, ok := alwaysAllowedPaths[path]
	return ok
}

// PathAllowed evaluates the permission rule over a snapshot of allowed menu
// URLs: the request path must equal an allowed URL or be a "/"-delimited
// sub-path of one. "/foo" does not match a permitted "/foobar", and a
// permitted root URL "/" never grants anything.
func PathAllowed(path string, allowed []string) bool {
	for _, url := range allowed {
		if url == "/" {
			continue
		}
		if path == url || strings.HasPrefix(path, url+"/") {
			return true
		}
	}
	return false
}
