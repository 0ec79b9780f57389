// Package status holds the account status values stored on users.
package status

const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a recognised status.
func IsValid(s string) bool {
	return s == Active || s == Disabled
}
