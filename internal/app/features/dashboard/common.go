// internal/app/features/dashboard/common.go
package dashboard

import (
	"strconv"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/dalemusser/schooldesk/internal/app/system/mockdata"
)

// baseDashboardData contains fields common to all dashboard views.
type baseDashboardData struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	CurrentPath string

	// CanManageCatalog shows the "New Subject" action.
	CanManageCatalog bool
}

// card is one scalar tile.
type card struct {
	Label string
	Value int
	Hint  string
}

// bar is one row of a horizontal bar chart. Width is a percentage of the
// largest value in its series.
type bar struct {
	Label string
	Value int
	Width int
}

// warningVariant is the badge style for low-capacity classes.
const warningVariant = "destructive"

// warning is one capacity badge.
type warning struct {
	Text         string
	BadgeVariant string
}

type dashboardData struct {
	baseDashboardData

	Cards        []card
	Distribution []bar
	Departments  []bar
	Capacity     []bar
	Warnings     []warning
	Trends       []bar
	Activity     []mockdata.Activity

	// Notes lists the collections whose list hit the page size.
	Notes []string
}

func bars(points []metrics.Point) []bar {
	max := 0
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	out := make([]bar, 0, len(points))
	for _, p := range points {
		w := 0
		if max > 0 && p.Value > 0 {
			w = p.Value * 100 / max
		}
		out = append(out, bar{Label: p.Name, Value: p.Value, Width: w})
	}
	return out
}

func trendBars(points []mockdata.TrendPoint) []bar {
	ps := make([]metrics.Point, 0, len(points))
	for _, p := range points {
		ps = append(ps, metrics.Point{Name: p.Month, Value: p.Enrollments})
	}
	return bars(ps)
}

func warnings(s metrics.Summary) []warning {
	out := make([]warning, 0, len(s.CapacityWarnings))
	for _, c := range s.CapacityWarnings {
		if c.Capacity == nil {
			continue
		}
		out = append(out, warning{
			Text:         c.Name + ": " + strconv.Itoa(*c.Capacity) + " spots left",
			BadgeVariant: warningVariant,
		})
	}
	return out
}

// truncationNotes reports every list that returned exactly pageSize rows
// while the collection holds more.
func truncationNotes(rep report, pageSize int) []string {
	if rep.Counts == nil || pageSize <= 0 {
		return nil
	}
	var notes []string
	check := func(name string, got int, total int64) {
		if got >= pageSize && total > int64(got) {
			notes = append(notes, "Showing the first "+strconv.Itoa(got)+" of "+
				strconv.FormatInt(total, 10)+" "+name+".")
		}
	}
	check("users", len(rep.Snapshot.Users), rep.Counts.Users)
	check("departments", len(rep.Snapshot.Departments), rep.Counts.Departments)
	check("subjects", len(rep.Snapshot.Subjects), rep.Counts.Subjects)
	check("classes", len(rep.Snapshot.Classes), rep.Counts.Classes)
	return notes
}

func newDashboardData(base baseDashboardData, rep report, pageSize int) dashboardData {
	s := rep.Summary
	return dashboardData{
		baseDashboardData: base,
		Cards: []card{
			{Label: "Users", Value: s.Users.Total, Hint: strconv.Itoa(s.Users.Students) + " students"},
			{Label: "Departments", Value: s.Departments},
			{Label: "Subjects", Value: s.Subjects},
			{Label: "Classes", Value: s.Classes, Hint: strconv.Itoa(s.Enrollments) + " enrolled"},
		},
		Distribution: bars(s.Distribution),
		Departments:  bars(s.ClassesByDepartment),
		Capacity:     bars(s.Capacity.Points()),
		Warnings:     warnings(s),
		Trends:       trendBars(rep.Trends),
		Activity:     rep.Activity,
		Notes:        truncationNotes(rep, pageSize),
	}
}
