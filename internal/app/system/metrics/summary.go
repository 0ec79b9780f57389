package metrics

import "github.com/dalemusser/schooldesk/internal/domain/models"

// Summary is every derived view the dashboard shows.
type Summary struct {
	Users       RoleCounts `json:"users"`
	Departments int        `json:"departments"`
	Subjects    int        `json:"subjects"`
	Classes     int        `json:"classes"`
	Enrollments int        `json:"enrollments"`

	Distribution        []Point        `json:"distribution"`
	ClassesByDepartment []Point        `json:"classes_by_department"`
	Capacity            CapacitySplit  `json:"capacity"`
	CapacityWarnings    []models.Class `json:"capacity_warnings"`
}

// Aggregator computes summaries. The zero value uses
// NominalClassCapacity.
type Aggregator struct {
	NominalCapacity int
}

// Aggregate derives the full summary from s.
func (a Aggregator) Aggregate(s Snapshot) Summary {
	roles := CountRoles(s.Users)
	capacity := Capacity(s.Classes, a.NominalCapacity)
	return Summary{
		Users:               roles,
		Departments:         len(s.Departments),
		Subjects:            len(s.Subjects),
		Classes:             len(s.Classes),
		Enrollments:         capacity.Filled,
		Distribution:        Distribution(roles),
		ClassesByDepartment: ClassesByDepartment(s.Classes),
		Capacity:            capacity,
		CapacityWarnings:    CapacityWarnings(s.Classes),
	}
}

// Aggregate derives the summary with the default nominal capacity.
func Aggregate(s Snapshot) Summary {
	return Aggregator{}.Aggregate(s)
}
