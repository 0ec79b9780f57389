// internal/app/features/subjects/handler.go
package subjects

import (
	errorsfeature "github.com/dalemusser/schooldesk/internal/app/features/errors"
	departmentstore "github.com/dalemusser/schooldesk/internal/app/store/departments"
	subjectstore "github.com/dalemusser/schooldesk/internal/app/store/subjects"
	"github.com/dalemusser/schooldesk/internal/app/system/provider"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Subjects.
type Handler struct {
	Departments provider.Lister[models.Department]
	Subjects    provider.Creator[models.Subject]
	Guard       *Guard

	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a Subjects handler bound to the Mongo stores.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Departments: departmentstore.New(db),
		Subjects:    subjectstore.New(db),
		Guard:       NewGuard(),
		ErrLog:      errLog,
		Log:         logger,
	}
}
