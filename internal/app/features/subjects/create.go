// internal/app/features/subjects/create.go
package subjects

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/schooldesk/internal/app/features/departments"
	subjectstore "github.com/dalemusser/schooldesk/internal/app/store/subjects"
	"github.com/dalemusser/schooldesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schooldesk/internal/app/system/inputval"
	"github.com/dalemusser/schooldesk/internal/app/system/normalize"
	"github.com/dalemusser/schooldesk/internal/app/system/provider"
	"github.com/dalemusser/schooldesk/internal/app/system/timeouts"
	"github.com/dalemusser/schooldesk/internal/domain/models"
)

// User-facing messages.
const (
	msgInFlight      = "A submission is already in progress"
	msgDuplicateCode = "A subject with that code already exists."
	msgCreateFailed  = "Could not create the subject. Please try again."
)

// outcome is the result of one submission attempt.
type outcome struct {
	Status    int
	Fields    map[string]string // per-field messages
	FormError string
	Err       error
	Subject   models.Subject
}

func (o outcome) ok() bool { return o.Status == http.StatusCreated }

// clean trims free-text input before validation.
func (in subjectInput) clean() subjectInput {
	in.Name = normalize.Name(in.Name)
	in.Code = normalize.Name(in.Code)
	in.Description = normalize.Name(in.Description)
	in.Department = normalize.Name(in.Department)
	in.FormToken = normalize.QueryParam(in.FormToken)
	return in
}

// loadDepartments fetches the dropdown source. nil means the list is
// unavailable.
func (h *Handler) loadDepartments(ctx context.Context) []models.Department {
	return provider.Fetch(ctx, h.Departments, "departments", departments.PageSize, timeouts.Fetch(), h.Log)
}

// submit validates in and, if it passes, issues exactly one create call.
// Validation failures never reach the store. A nil depts is an empty
// known set, so no department passes while the list is unavailable.
func (h *Handler) submit(ctx context.Context, userID string, in subjectInput, depts []models.Department) outcome {
	res := inputval.Validate(in)
	res.OneOf("department", "Department", in.Department, departments.Names(depts))
	if res.HasErrors() {
		return outcome{Status: http.StatusUnprocessableEntity, Fields: res.Fields}
	}

	key := guardKey(userID, in.FormToken)
	if !h.Guard.Acquire(key) {
		return outcome{Status: http.StatusConflict, FormError: msgInFlight}
	}
	defer h.Guard.Release(key)

	sub := models.Subject{
		Name:        in.Name,
		Code:        in.Code,
		Description: htmlsanitize.StripTags(in.Description),
		Department:  in.Department,
	}

	cctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	created, err := h.Subjects.Create(cctx, sub)
	switch {
	case err == nil:
		return outcome{Status: http.StatusCreated, Subject: created}
	case errors.Is(err, subjectstore.ErrDuplicateCode):
		return outcome{Status: http.StatusConflict, Fields: map[string]string{"code": msgDuplicateCode}}
	default:
		return outcome{Status: http.StatusInternalServerError, FormError: msgCreateFailed, Err: err}
	}
}
