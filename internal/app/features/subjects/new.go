// internal/app/features/subjects/new.go
package subjects

import (
	"net/http"

	"github.com/dalemusser/schooldesk/internal/app/features/departments"
	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/dalemusser/schooldesk/internal/app/system/formutil"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const backDefault = "/dashboard"

func (h *Handler) formData(r *http.Request, in subjectInput, depts []models.Department) newSubjectData {
	data := newSubjectData{
		Name:                   in.Name,
		Code:                   in.Code,
		Description:            in.Description,
		Department:             in.Department,
		FormToken:              in.FormToken,
		Departments:            departments.Options(depts),
		DepartmentsUnavailable: depts == nil,
	}
	formutil.SetBase(&data.Base, r, "New Subject", backDefault)
	return data
}

// ServeNew renders the "New Subject" form.
// Authorization: RequireRole("admin") middleware in routes.go ensures only admins reach this handler.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	depts := h.loadDepartments(r.Context())
	data := h.formData(r, subjectInput{FormToken: uuid.NewString()}, depts)
	templates.Render(w, r, "subject_new", data)
}

// HandleCreate processes the New Subject form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", backDefault)
		return
	}

	in := subjectInput{
		Name:        r.FormValue("name"),
		Code:        r.FormValue("code"),
		Description: r.FormValue("description"),
		Department:  r.FormValue("department"),
		FormToken:   r.FormValue("form_token"),
	}.clean()
	if in.FormToken == "" {
		in.FormToken = uuid.NewString()
	}

	depts := h.loadDepartments(r.Context())
	o := h.submit(r.Context(), userID(r), in, depts)
	if o.ok() {
		h.Log.Info("subject created",
			zap.String("subject_id", o.Subject.ID.Hex()),
			zap.String("code", o.Subject.Code))
		http.Redirect(w, r, httpnav.ResolveBackURL(r, backDefault), http.StatusSeeOther)
		return
	}
	if o.Err != nil {
		h.Log.Error("create subject failed", zap.Error(o.Err), zap.String("code", in.Code))
	}

	data := h.formData(r, in, depts)
	data.SetFieldErrors(o.Fields)
	if o.FormError != "" {
		data.SetError(o.FormError)
	}

	w.WriteHeader(o.Status)
	templates.Render(w, r, "subject_new", data)
}

func userID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok && u != nil {
		return u.ID
	}
	return ""
}
