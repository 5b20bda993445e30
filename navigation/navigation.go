package navigation

import (
	"strings"

	"github.com/pkg/errors"
)

// Variant selects how the sidebar is rendered.
type Variant string

const (
	VariantFull    Variant = "full"
	VariantCompact Variant = "compact"
)

// ParseVariant defaults to the full sidebar when v is empty.
func ParseVariant(v string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(v))) {
	case "", VariantFull:
		return VariantFull, nil
	case VariantCompact:
		return VariantCompact, nil
	}
	return "", errors.Errorf("unknown sidebar variant %q", v)
}

// Route is one page of the clinic UI.
type Route struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
	// Stage is the queue stage whose waiting count badges the route.
	Stage string `json:"stage,omitempty"`
}

// LoginRoute is the root page. It is not part of the sidebar.
var LoginRoute = Route{Name: "Login", Path: "/", Icon: "log-in"}

var routes = []Route{
	{Name: "Dashboard", Path: "/dashboard", Icon: "layout-dashboard"},
	{Name: "Patient Registration", Path: "/patients/register", Icon: "user-plus"},
	{Name: "Triage", Path: "/triage", Icon: "activity", Stage: "triage"},
	{Name: "Consultation", Path: "/consultation", Icon: "stethoscope", Stage: "consultation"},
	{Name: "Laboratory", Path: "/laboratory", Icon: "flask-conical", Stage: "laboratory"},
	{Name: "Prescriptions", Path: "/prescriptions", Icon: "pill", Stage: "pharmacy"},
	{Name: "Payments", Path: "/payments", Icon: "credit-card", Stage: "billing"},
	{Name: "Queue Management", Path: "/queue", Icon: "list-ordered"},
}

// Routes returns the login route followed by the sidebar routes.
func Routes() []Route {
	return append([]Route{LoginRoute}, routes...)
}

// Active reports whether path selects route: an exact match, or path lies
// below route.Path on a segment boundary.
func Active(route Route, path string) bool {
	if path == "" {
		return false
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == route.Path {
		return true
	}
	if route.Path == "/" {
		return false
	}
	return strings.HasPrefix(path, route.Path+"/")
}

// Item is a sidebar entry as rendered.
type Item struct {
	Name   string `json:"name,omitempty"`
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Badge  int    `json:"badge,omitempty"`
	Active bool   `json:"active"`
}

// Sidebar renders the sidebar for the current path. badges maps a queue stage
// to its waiting count; compact items carry only the icon.
func Sidebar(path string, variant Variant, badges map[string]int) []Item {
	items := make([]Item, 0, len(routes))
	for _, route := range routes {
		item := Item{Path: route.Path, Icon: route.Icon, Active: Active(route, path)}
		if variant != VariantCompact {
			item.Name = route.Name
			if route.Stage != "" {
				item.Badge = badges[route.Stage]
			}
		}
		items = append(items, item)
	}
	return items
}

// Current returns the route the path selects, if any.
func Current(path string) (Route, bool) {
	for _, route := range Routes() {
		if Active(route, path) {
			return route, true
		}
	}
	return Route{}, false
}
