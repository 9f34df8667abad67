package routing

import "fmt"

// Endpoint roles reported by InputError
const (
	RoleOrigin      = "origin"
	RoleDestination = "destination"
)

// InputError reports a station name that does not match any known station
type InputError struct {
	Role string
	Name string
}

func (e *InputError) Error() string {
	if e.Role == RoleDestination {
		return fmt.Sprintf("destination not found: '%s'", e.Name)
	}
	return fmt.Sprintf("origin not found: '%s'", e.Name)
}
