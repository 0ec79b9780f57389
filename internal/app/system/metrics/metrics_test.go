package metrics_test

import (
	"reflect"
	"testing"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(n int) *int { return &n }

func class(name string, capacity *int, dept string) models.Class {
	c := models.Class{ID: primitive.NewObjectID(), Name: name, Capacity: capacity}
	if dept != "" {
		c.Department = &models.DepartmentRef{Name: dept}
	}
	return c
}

func users(roles ...string) []models.User {
	out := make([]models.User, 0, len(roles))
	for _, r := range roles {
		out = append(out, models.User{ID: primitive.NewObjectID(), Role: r})
	}
	return out
}

func TestCountRoles(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  metrics.RoleCounts
	}{
		{"empty", nil, metrics.RoleCounts{}},
		{"all recognised", []string{"student", "student", "teacher", "admin"},
			metrics.RoleCounts{Total: 4, Students: 2, Teachers: 1, Admins: 1}},
		{"unrecognised roles only count in total", []string{"student", "parent", "", "superadmin"},
			metrics.RoleCounts{Total: 4, Students: 1}},
		{"case and whitespace are normalised", []string{" Teacher ", "ADMIN"},
			metrics.RoleCounts{Total: 2, Teachers: 1, Admins: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.CountRoles(users(tt.roles...))
			if got != tt.want {
				t.Errorf("CountRoles() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCountRoles_SumNeverExceedsTotal(t *testing.T) {
	sets := [][]string{
		{"student", "teacher", "admin"},
		{"student", "guest"},
		{"janitor"},
		{},
	}
	for _, roles := range sets {
		rc := metrics.CountRoles(users(roles...))
		sum := rc.Students + rc.Teachers + rc.Admins
		if sum > rc.Total {
			t.Errorf("roles %v: sum %d exceeds total %d", roles, sum, rc.Total)
		}
		allKnown := true
		for _, r := range roles {
			if r != "student" && r != "teacher" && r != "admin" {
				allKnown = false
			}
		}
		if (sum == rc.Total) != allKnown {
			t.Errorf("roles %v: sum==total is %v, want %v", roles, sum == rc.Total, allKnown)
		}
	}
}

func TestDistribution_FixedOrder(t *testing.T) {
	rc := metrics.CountRoles(users("student", "student", "teacher"))
	got := metrics.Distribution(rc)
	want := []metrics.Point{
		{Name: "Students", Value: 2},
		{Name: "Teachers", Value: 1},
		{Name: "Admins", Value: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Distribution() = %+v, want %+v", got, want)
	}
}

func TestClassesByDepartment_FirstEncounterOrder(t *testing.T) {
	classes := []models.Class{
		class("Physics 201", intPtr(10), "Science"),
		class("History 101", intPtr(10), "Humanities"),
		class("Orphan", nil, ""),
		class("Biology 101", intPtr(10), "Science"),
		class("Art 101", intPtr(10), "Arts"),
	}
	got := metrics.ClassesByDepartment(classes)
	want := []metrics.Point{
		{Name: "Science", Value: 2},
		{Name: "Humanities", Value: 1},
		{Name: "Unknown", Value: 1},
		{Name: "Arts", Value: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClassesByDepartment() = %+v, want %+v", got, want)
	}
}

func TestClassesByDepartment_SumsToClassCount(t *testing.T) {
	classes := []models.Class{
		class("A", nil, "X"),
		class("B", nil, ""),
		{ID: primitive.NewObjectID(), Name: "C", Department: &models.DepartmentRef{}},
		class("D", nil, "Y"),
	}
	buckets := metrics.ClassesByDepartment(classes)
	total := 0
	unknown := 0
	for _, p := range buckets {
		total += p.Value
		if p.Name == metrics.UnknownDepartment {
			unknown = p.Value
		}
	}
	if total != len(classes) {
		t.Errorf("bucket total: got %d, want %d", total, len(classes))
	}
	// nil reference and empty name both land in Unknown
	if unknown != 2 {
		t.Errorf("Unknown bucket: got %d, want 2", unknown)
	}
}

func TestClassesByDepartment_Empty(t *testing.T) {
	if got := metrics.ClassesByDepartment(nil); len(got) != 0 {
		t.Errorf("expected no buckets, got %+v", got)
	}
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		name    string
		classes []models.Class
		want    metrics.CapacitySplit
	}{
		{"no classes", nil, metrics.CapacitySplit{}},
		{"nil capacity counts as zero",
			[]models.Class{class("a", intPtr(3), ""), class("b", nil, ""), class("c", intPtr(20), "")},
			metrics.CapacitySplit{Filled: 23, Available: 150 - 23}},
		{"available is not clamped",
			[]models.Class{class("a", intPtr(80), "")},
			metrics.CapacitySplit{Filled: 80, Available: -30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.Capacity(tt.classes, metrics.NominalClassCapacity)
			if got != tt.want {
				t.Errorf("Capacity() = %+v, want %+v", got, tt.want)
			}
			if got.Available != len(tt.classes)*50-got.Filled {
				t.Errorf("Available %d != classes*50 - filled", got.Available)
			}
		})
	}
}

func TestCapacity_NonPositiveNominalUsesDefault(t *testing.T) {
	got := metrics.Capacity([]models.Class{class("a", intPtr(5), "")}, 0)
	if got.Available != 45 {
		t.Errorf("Available: got %d, want 45", got.Available)
	}
}

func TestCapacity_CustomNominal(t *testing.T) {
	got := metrics.Capacity([]models.Class{class("a", intPtr(5), ""), class("b", nil, "")}, 30)
	if got.Available != 55 {
		t.Errorf("Available: got %d, want 55", got.Available)
	}
}

func TestCapacitySplit_Points(t *testing.T) {
	got := metrics.CapacitySplit{Filled: 7, Available: 93}.Points()
	want := []metrics.Point{{Name: "Filled", Value: 7}, {Name: "Available", Value: 93}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Points() = %+v, want %+v", got, want)
	}
}

func TestCapacityWarnings(t *testing.T) {
	three := class("three", intPtr(3), "")
	one := class("one", intPtr(1), "")
	four := class("four", intPtr(4), "")
	classes := []models.Class{
		class("zero", intPtr(0), ""),
		three,
		class("nil", nil, ""),
		class("five", intPtr(5), ""),
		one,
		class("negative", intPtr(-2), ""),
		four,
		class("twenty", intPtr(20), ""),
	}

	got := metrics.CapacityWarnings(classes)
	want := []models.Class{three, one, four}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CapacityWarnings() names = %v, want %v", names(got), names(want))
	}
}

func TestAggregate_Scenario(t *testing.T) {
	warn := class("Math 101", intPtr(3), "Science")
	snap := metrics.Snapshot{
		Users:   users("student", "student", "teacher"),
		Classes: []models.Class{warn, class("Art", nil, ""), class("PE", intPtr(20), "Sports")},
	}

	got := metrics.Aggregate(snap)

	if got.Capacity.Filled != 23 {
		t.Errorf("Filled: got %d, want 23", got.Capacity.Filled)
	}
	if got.Enrollments != 23 {
		t.Errorf("Enrollments: got %d, want 23", got.Enrollments)
	}
	if got.Capacity.Available != 127 {
		t.Errorf("Available: got %d, want 127", got.Capacity.Available)
	}
	if !reflect.DeepEqual(got.CapacityWarnings, []models.Class{warn}) {
		t.Errorf("CapacityWarnings: got %v, want [Math 101]", names(got.CapacityWarnings))
	}
	wantDist := []metrics.Point{{Name: "Students", Value: 2}, {Name: "Teachers", Value: 1}, {Name: "Admins", Value: 0}}
	if !reflect.DeepEqual(got.Distribution, wantDist) {
		t.Errorf("Distribution: got %+v, want %+v", got.Distribution, wantDist)
	}
	if got.Users.Total != 3 || got.Classes != 3 || got.Departments != 0 || got.Subjects != 0 {
		t.Errorf("scalar counts: got %+v", got)
	}
}

func TestAggregate_PartialSnapshot(t *testing.T) {
	// Only departments have arrived; everything else is still nil.
	snap := metrics.Snapshot{Departments: []models.Department{{ID: primitive.NewObjectID(), Name: "Science"}}}

	got := metrics.Aggregate(snap)

	if got.Departments != 1 {
		t.Errorf("Departments: got %d, want 1", got.Departments)
	}
	if got.Users.Total != 0 || got.Classes != 0 || got.Capacity.Filled != 0 || got.Capacity.Available != 0 {
		t.Errorf("expected zeroed figures for missing collections, got %+v", got)
	}
	if len(got.Distribution) != 3 {
		t.Errorf("Distribution should always have 3 points, got %d", len(got.Distribution))
	}
	if got.CapacityWarnings == nil || got.ClassesByDepartment == nil {
		t.Error("series should be empty, not nil")
	}
}

func TestAggregator_NominalCapacity(t *testing.T) {
	agg := metrics.Aggregator{NominalCapacity: 10}
	got := agg.Aggregate(metrics.Snapshot{Classes: []models.Class{class("a", intPtr(4), "")}})
	if got.Capacity.Available != 6 {
		t.Errorf("Available: got %d, want 6", got.Capacity.Available)
	}
}

func names(cs []models.Class) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}
