package metrics

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"

	"github.com/dalemusser/schooldesk/internal/domain/models"
)

// Snapshot is the input to aggregation: the most recently fetched copy of
// each collection. A nil slice means "not available yet" and aggregates
// as empty. Collections are fetched independently, so a snapshot makes no
// promise that they were read at the same instant.
type Snapshot struct {
	Users       []models.User
	Departments []models.Department
	Subjects    []models.Subject
	Classes     []models.Class
}

// Key returns a content hash over every field aggregation reads. Two
// snapshots with the same key produce the same Summary.
func (s Snapshot) Key() string {
	h := sha256.New()

	section(h, "users", len(s.Users))
	for _, u := range s.Users {
		field(h, u.ID.Hex())
		field(h, u.Role)
	}

	section(h, "departments", len(s.Departments))
	for _, d := range s.Departments {
		field(h, d.ID.Hex())
	}

	section(h, "subjects", len(s.Subjects))
	for _, sub := range s.Subjects {
		field(h, sub.ID.Hex())
	}

	section(h, "classes", len(s.Classes))
	for _, c := range s.Classes {
		field(h, c.ID.Hex())
		field(h, c.Name)
		if c.Capacity == nil {
			field(h, "-")
		} else {
			field(h, strconv.Itoa(*c.Capacity))
		}
		if c.Department == nil {
			field(h, "-")
		} else {
			field(h, "d:"+c.Department.Name)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func section(h hash.Hash, name string, n int) {
	field(h, "#"+name+":"+strconv.Itoa(n))
}

// field writes a length-prefixed value so adjacent fields cannot collide.
func field(h hash.Hash, v string) {
	h.Write([]byte(strconv.Itoa(len(v))))
	h.Write([]byte{':'})
	h.Write([]byte(v))
}
