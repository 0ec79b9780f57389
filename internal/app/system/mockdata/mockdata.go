// Package mockdata supplies the placeholder series the dashboard shows
// until real enrollment history and an activity log exist.
//
// Handlers depend on the TrendSource and ActivitySource interfaces, never
// on the fixtures directly, so a real provider can replace Static without
// touching view code.
package mockdata

import (
	"context"
	"strings"
)

// TrendPoint is one month of the enrollment trend line.
type TrendPoint struct {
	Month       string `json:"month"`
	Enrollments int    `json:"enrollments"`
}

// Activity types.
const (
	ActivityEnroll   = "enroll"
	ActivityUnenroll = "unenroll"
	ActivityInvite   = "invite"
	ActivityCreate   = "create"
)

// Activity is one row of the recent-activity feed.
type Activity struct {
	Type      string `json:"type"`
	User      string `json:"user"`
	ClassName string `json:"class_name"`
	Time      string `json:"time"` // already humanised ("2m ago")
}

// Verb is the phrase linking the user to the class.
func (a Activity) Verb() string {
	switch a.Type {
	case ActivityEnroll:
		return "enrolled in"
	case ActivityUnenroll:
		return "left"
	case ActivityInvite:
		return "invited to"
	default:
		return "created"
	}
}

// Label is the badge text: the type with its first letter upper-cased.
func (a Activity) Label() string {
	if a.Type == "" {
		return ""
	}
	return strings.ToUpper(a.Type[:1]) + a.Type[1:]
}

// BadgeVariant is "default" for enrollments and "secondary" otherwise.
func (a Activity) BadgeVariant() string {
	if a.Type == ActivityEnroll {
		return "default"
	}
	return "secondary"
}

// TrendSource provides the enrollment trend series.
type TrendSource interface {
	EnrollmentTrends(ctx context.Context) ([]TrendPoint, error)
}

// ActivitySource provides the recent-activity feed.
type ActivitySource interface {
	RecentActivity(ctx context.Context) ([]Activity, error)
}

// Static serves fixed demo fixtures. It satisfies both sources.
type Static struct{}

var (
	_ TrendSource    = Static{}
	_ ActivitySource = Static{}
)

func (Static) EnrollmentTrends(context.Context) ([]TrendPoint, error) {
	return []TrendPoint{
		{Month: "Jan", Enrollments: 20},
		{Month: "Feb", Enrollments: 35},
		{Month: "Mar", Enrollments: 50},
		{Month: "Apr", Enrollments: 40},
		{Month: "May", Enrollments: 60},
		{Month: "Jun", Enrollments: 55},
	}, nil
}

func (Static) RecentActivity(context.Context) ([]Activity, error) {
	return []Activity{
		{Type: ActivityEnroll, User: "Alice", ClassName: "Math 101", Time: "2m ago"},
		{Type: ActivityCreate, User: "Admin", ClassName: "Physics 201", Time: "10m ago"},
		{Type: ActivityUnenroll, User: "Bob", ClassName: "History 101", Time: "1h ago"},
		{Type: ActivityInvite, User: "Teacher Jane", ClassName: "Biology 101", Time: "2h ago"},
	}, nil
}
