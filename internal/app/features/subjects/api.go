// internal/app/features/subjects/api.go
package subjects

import (
	"encoding/json"
	"net/http"

	errorsfeature "github.com/dalemusser/schooldesk/internal/app/features/errors"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type apiErrors struct {
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// HandleCreateAPI is the JSON variant of HandleCreate.
// POST /api/subjects
//
// Responses: 201 with the stored subject; 422 with per-field errors; 409
// when the same form is still in flight or the code is taken; 500 otherwise.
// The form token may be sent as "form_token" or the X-Form-Token header.
func (h *Handler) HandleCreateAPI(w http.ResponseWriter, r *http.Request) {
	var in subjectInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode subject json", err, "Invalid JSON body.", "")
		return
	}
	if in.FormToken == "" {
		in.FormToken = r.Header.Get("X-Form-Token")
	}
	in = in.clean()

	o := h.submit(r.Context(), userID(r), in, h.loadDepartments(r.Context()))
	switch {
	case o.ok():
		h.Log.Info("subject created",
			zap.String("subject_id", o.Subject.ID.Hex()),
			zap.String("code", o.Subject.Code))
		errorsfeature.WriteJSON(w, http.StatusCreated, o.Subject)
	case o.Err != nil:
		h.ErrLog.LogServerError(w, r, "create subject failed", o.Err, o.FormError, "")
	default:
		errorsfeature.WriteJSON(w, o.Status, apiErrors{Error: o.FormError, Errors: o.Fields})
	}
}
