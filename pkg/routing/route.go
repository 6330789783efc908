package routing

import "strings"

// View names the top-level screens. Unknown fragments still map to a View;
// the view layer simply has nothing to render for them, which is accepted.
type View string

const (
	ViewHome      View = "home"
	ViewProduct   View = "product"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewCheckout  View = "checkout"
	ViewAdmin     View = "admin"
)

// Route is derived purely from the location fragment and never persisted.
type Route struct {
	View      View
	ProductID string
}

const productPrefix = "product/"

// ParseFragment maps a raw location fragment to a Route. A leading "#" is
// tolerated so callers can pass location strings verbatim.
func ParseFragment(fragment string) Route {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return Route{View: ViewHome}
	}
	if rest, ok := strings.CutPrefix(fragment, productPrefix); ok {
		id, _, _ := strings.Cut(rest, "/")
		return Route{View: ViewProduct, ProductID: id}
	}
	return Route{View: View(fragment)}
}
