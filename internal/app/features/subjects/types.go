// internal/app/features/subjects/types.go
package subjects

import (
	"github.com/dalemusser/schooldesk/internal/app/features/departments"
	"github.com/dalemusser/schooldesk/internal/app/system/formutil"
)

// subjectInput is the create payload for both the HTML form and the JSON API.
type subjectInput struct {
	Name        string `json:"name" validate:"notblank,max=200" label:"Name" required_msg:"Name is required"`
	Code        string `json:"code" validate:"notblank,max=50" label:"Code" required_msg:"Code is required"`
	Description string `json:"description" validate:"max=2000" label:"Description"`
	Department  string `json:"department" validate:"notblank" label:"Department" required_msg:"Please select a department"`
	FormToken   string `json:"form_token"`
}

// newSubjectData is the view model for the create form.
type newSubjectData struct {
	formutil.Base

	Name        string
	Code        string
	Description string
	Department  string
	FormToken   string

	Departments []departments.Option
	// DepartmentsUnavailable is set when the list fetch failed.
	DepartmentsUnavailable bool
}
