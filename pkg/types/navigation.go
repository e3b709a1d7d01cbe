package types

// Destination is a navigation entry surfaced to clients. Which entries an
// account sees depends only on its role; this is a display concern with no
// bearing on authorization.
type Destination struct {
	Path  string
	Label string
}

var workerDestinations = []Destination{
	{Path: "/dashboard", Label: "Home"},
	{Path: "/jobs", Label: "Jobs"},
	{Path: "/my-jobs", Label: "My Jobs"},
	{Path: "/profile", Label: "Profile"},
}

var employerDestinations = []Destination{
	{Path: "/dashboard", Label: "Home"},
	{Path: "/post-job", Label: "Post Job"},
	{Path: "/my-jobs", Label: "My Jobs"},
	{Path: "/profile", Label: "Profile"},
}

// Destinations maps a role to its fixed, ordered navigation list. Callers get
// a copy so they cannot mutate the shared tables.
func Destinations(role UserRole) []Destination {
	var src []Destination
	switch role {
	case RoleWorker:
		src = workerDestinations
	case RoleEmployer:
		src = employerDestinations
	default:
		return nil
	}
	out := make([]Destination, len(src))
	copy(out, src)
	return out
}
