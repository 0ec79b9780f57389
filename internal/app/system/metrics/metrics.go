// Package metrics derives the dashboard figures from a snapshot of the
// users, departments, subjects and classes collections.
//
// Everything here is a pure function of its inputs. Nil slices are
// treated exactly like empty ones, so a caller can aggregate whatever
// subset of the collections has been fetched so far.
package metrics

import (
	"strings"

	"github.com/dalemusser/schooldesk/internal/domain/models"
)

// NominalClassCapacity is the per-class seat count assumed when deriving
// the "Available" figure. Classes carry no maximum-capacity field, so
// available = classes*NominalClassCapacity - filled.
const NominalClassCapacity = 50

// UnknownDepartment is the histogram bucket for classes with no
// department reference (or an empty department name).
const UnknownDepartment = "Unknown"

// warnBelow is the exclusive upper bound for a capacity warning.
const warnBelow = 5

// Chart labels, in display order.
const (
	LabelStudents  = "Students"
	LabelTeachers  = "Teachers"
	LabelAdmins    = "Admins"
	LabelFilled    = "Filled"
	LabelAvailable = "Available"
)

// Point is one (label, value) pair of a chart series.
type Point struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RoleCounts holds the user totals. Users whose role is not one of
// student, teacher or admin only count towards Total.
type RoleCounts struct {
	Total    int `json:"total"`
	Students int `json:"students"`
	Teachers int `json:"teachers"`
	Admins   int `json:"admins"`
}

// CapacitySplit is the filled/available seat split across all classes.
// Available is not clamped and goes negative when classes hold more than
// the nominal capacity.
type CapacitySplit struct {
	Filled    int `json:"filled"`
	Available int `json:"available"`
}

// Points returns the split as a two-slice pie series.
func (c CapacitySplit) Points() []Point {
	return []Point{
		{Name: LabelFilled, Value: c.Filled},
		{Name: LabelAvailable, Value: c.Available},
	}
}

// CountRoles counts users in total and per recognised role.
func CountRoles(users []models.User) RoleCounts {
	out := RoleCounts{Total: len(users)}
	for _, u := range users {
		switch strings.ToLower(strings.TrimSpace(u.Role)) {
		case models.RoleStudent:
			out.Students++
		case models.RoleTeacher:
			out.Teachers++
		case models.RoleAdmin:
			out.Admins++
		}
	}
	return out
}

// Distribution returns the role breakdown in the fixed order
// Students, Teachers, Admins.
func Distribution(rc RoleCounts) []Point {
	return []Point{
		{Name: LabelStudents, Value: rc.Students},
		{Name: LabelTeachers, Value: rc.Teachers},
		{Name: LabelAdmins, Value: rc.Admins},
	}
}

// DepartmentLabel resolves the display name used to bucket a class.
func DepartmentLabel(c models.Class) string {
	if name := c.DepartmentName(); name != "" {
		return name
	}
	return UnknownDepartment
}

// ClassesByDepartment counts classes per department name. Buckets appear
// in the order their department is first encountered.
func ClassesByDepartment(classes []models.Class) []Point {
	out := []Point{}
	index := make(map[string]int)
	for _, c := range classes {
		name := DepartmentLabel(c)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Point{Name: name})
		}
		out[i].Value++
	}
	return out
}

// Capacity sums class capacities (nil counts as zero) and derives the
// available figure from nominal seats per class. A non-positive nominal
// falls back to NominalClassCapacity.
func Capacity(classes []models.Class, nominal int) CapacitySplit {
	if nominal <= 0 {
		nominal = NominalClassCapacity
	}
	filled := 0
	for _, c := range classes {
		if c.Capacity != nil {
			filled += *c.Capacity
		}
	}
	return CapacitySplit{
		Filled:    filled,
		Available: len(classes)*nominal - filled,
	}
}

// CapacityWarnings returns, in input order, the classes whose capacity is
// set and strictly between 0 and 5. Zero and nil are not warnings.
func CapacityWarnings(classes []models.Class) []models.Class {
	out := []models.Class{}
	for _, c := range classes {
		if c.Capacity != nil && *c.Capacity > 0 && *c.Capacity < warnBelow {
			out = append(out, c)
		}
	}
	return out
}
