// internal/app/system/status/status.go

// Package status defines the lifecycle status values shared by
// organizations and groups.
package status

const (
	Active   = "active"
	Archived = "archived"
)

// Valid reports whether s is a recognized status value.
func Valid(s string) bool {
	return s == Active || s == Archived
}
