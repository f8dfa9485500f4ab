package shipping

import "strings"

// Route holds the transit time and freight rate for one destination.
type Route struct {
	TransitDays int     `json:"transit_days"`
	CostPerKg   float64 `json:"cost_per_kg"`
}

// DefaultRoute is returned for destinations missing from the table.
var DefaultRoute = Route{TransitDays: 7, CostPerKg: 1.50}

// RouteProvider supplies the current route table. The table is read fresh
// on every lookup so configuration updates take effect immediately.
type RouteProvider interface {
	Routes() map[string]Route
}

// StaticRoutes is a RouteProvider over a fixed map.
type StaticRoutes map[string]Route

// Routes implements RouteProvider.
func (r StaticRoutes) Routes() map[string]Route { return r }

// DefaultRoutes returns the built-in route table.
func DefaultRoutes() StaticRoutes {
	return StaticRoutes{
		"USA":     {TransitDays: 5, CostPerKg: 0.80},
		"GERMANY": {TransitDays: 12, CostPerKg: 2.10},
		"SPAIN":   {TransitDays: 10, CostPerKg: 1.90},
		"CHINA":   {TransitDays: 18, CostPerKg: 3.50},
		"LOCAL":   {TransitDays: 1, CostPerKg: 0.20},
	}
}

// Table resolves destinations against an injected route provider.
type Table struct {
	provider RouteProvider
}

// NewTable creates a Table. A nil provider uses the built-in routes.
func NewTable(p RouteProvider) *Table {
	if p == nil {
		p = DefaultRoutes()
	}
	return &Table{provider: p}
}

// Route looks up the destination, case-insensitively. Unknown destinations
// resolve to DefaultRoute.
func (t *Table) Route(destination string) Route {
	if r, ok := t.provider.Routes()[strings.ToUpper(destination)]; ok {
		return r
	}
	return DefaultRoute
}

// Viable reports whether stock with the given shelf life survives the trip,
// including a one-day safety buffer.
func Viable(shelfLifeDays, transitDays int) bool {
	return shelfLifeDays >= transitDays+1
}
