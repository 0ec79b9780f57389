// internal/app/features/departments/options.go
package departments

import "github.com/dalemusser/schooldesk/internal/domain/models"

// PlaceholderLabel is the label of the leading, unselectable option.
const PlaceholderLabel = "Select Department"

// Option is one entry of a department dropdown.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Options builds dropdown options from depts, in order. The placeholder
// always comes first, even when depts is nil. Value and label are both
// the department's display name.
func Options(depts []models.Department) []Option {
	out := make([]Option, 0, len(depts)+1)
	out = append(out, Option{Value: "", Label: PlaceholderLabel, Disabled: true})
	for _, d := range depts {
		out = append(out, Option{Value: d.Name, Label: d.Name})
	}
	return out
}

// Names returns the display names of depts.
func Names(depts []models.Department) []string {
	out := make([]string, 0, len(depts))
	for _, d := range depts {
		out = append(out, d.Name)
	}
	return out
}
