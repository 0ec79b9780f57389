// internal/domain/models/class.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DepartmentRef is the embedded department reference on a class.
type DepartmentRef struct {
	ID   primitive.ObjectID `bson:"id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}

// Class is a scheduled class (a section of a subject).
//
// Capacity and Department are pointers because both may be absent on
// stored documents; readers must treat nil as "not set", never as zero
// or as a real department.
type Class struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"`
	Capacity   *int               `bson:"capacity,omitempty" json:"capacity"`
	Department *DepartmentRef     `bson:"department,omitempty" json:"department,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DepartmentName returns the referenced department's name, or "" when
// the class has no department.
func (c Class) DepartmentName() string {
	if c.Department == nil {
		return ""
	}
	return c.Department.Name
}
