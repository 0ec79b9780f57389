// internal/app/features/departments/handler.go
package departments

import (
	"net/http"

	errorsfeature "github.com/dalemusser/schooldesk/internal/app/features/errors"
	departmentstore "github.com/dalemusser/schooldesk/internal/app/store/departments"
	"github.com/dalemusser/schooldesk/internal/app/system/provider"
	"github.com/dalemusser/schooldesk/internal/app/system/timeouts"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PageSize is how many departments a dropdown offers.
const PageSize = 100

// Handler serves department lookups for forms.
type Handler struct {
	Departments provider.Lister[models.Department]
	Log         *zap.Logger
}

// NewHandler constructs a departments Handler backed by Mongo.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Departments: departmentstore.New(db),
		Log:         logger,
	}
}

type optionsResponse struct {
	Options []Option `json:"options"`
	// Available is false when the department list could not be loaded.
	Available bool `json:"available"`
}

// ServeOptions returns the department dropdown options as JSON.
// GET /departments/options
func (h *Handler) ServeOptions(w http.ResponseWriter, r *http.Request) {
	depts := provider.Fetch(r.Context(), h.Departments, "departments", PageSize, timeouts.Fetch(), h.Log)
	errorsfeature.WriteJSON(w, http.StatusOK, optionsResponse{
		Options:   Options(depts),
		Available: depts != nil,
	})
}
