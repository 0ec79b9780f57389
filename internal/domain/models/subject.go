// internal/domain/models/subject.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subject is a course offered by a department.
//
// NOTE:
//   - Department holds the department's display name, not its ID.
//     The create form binds the dropdown value (a name) straight through.
type Subject struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Code        string             `bson:"code" json:"code"`
	CodeCI      string             `bson:"code_ci" json:"-"` // unique
	Description string             `bson:"description" json:"description"`
	Department  string             `bson:"department" json:"department"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
