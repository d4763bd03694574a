package relationship

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("relationship not found")

type Type string

const (
	TypeSpouse   Type = "spouse"
	TypeParentOf Type = "parentOf"
)

type ParentRole string

const (
	RoleNone   ParentRole = ""
	RoleMother ParentRole = "mother"
	RoleFather ParentRole = "father"
)

// Relationship is one directed edge between two stored people. Spouse links
// are stored as two rows, one per direction; parentOf rows run parent →
// child and carry the parent's role.
type Relationship struct {
	id         uuid.UUID
	person1ID  uuid.UUID
	person2ID  uuid.UUID
	typ        Type
	parentRole ParentRole
	userID     uuid.UUID
	createdAt  time.Time
}

func New(userID, person1ID, person2ID uuid.UUID, typ Type, role ParentRole) Relationship {
	return Relationship{
		userID:     userID,
		person1ID:  person1ID,
		person2ID:  person2ID,
		typ:        typ,
		parentRole: role,
	}
}

func Hydrate(
	id uuid.UUID,
	person1ID uuid.UUID,
	person2ID uuid.UUID,
	typ Type,
	role ParentRole,
	userID uuid.UUID,
	createdAt time.Time,
) Relationship {
	return Relationship{
		id:         id,
		person1ID:  person1ID,
		person2ID:  person2ID,
		typ:        typ,
		parentRole: role,
		userID:     userID,
		createdAt:  createdAt,
	}
}

func (r Relationship) ID() uuid.UUID          { return r.id }
func (r Relationship) Person1ID() uuid.UUID   { return r.person1ID }
func (r Relationship) Person2ID() uuid.UUID   { return r.person2ID }
func (r Relationship) Type() Type             { return r.typ }
func (r Relationship) ParentRole() ParentRole { return r.parentRole }
func (r Relationship) UserID() uuid.UUID      { return r.userID }
func (r Relationship) CreatedAt() time.Time   { return r.createdAt }

// Involves reports whether the given person is on either side of the edge.
func (r Relationship) Involves(personID uuid.UUID) bool {
	return r.person1ID == personID || r.person2ID == personID
}

// Other returns the opposite endpoint relative to the given person.
func (r Relationship) Other(personID uuid.UUID) uuid.UUID {
	if r.person1ID == personID {
		return r.person2ID
	}
	return r.person1ID
}

// Rewire replaces every occurrence of from with to, on either side.
// Used when transferring a deleted duplicate's relationships to the
// surviving person.
func (r Relationship) Rewire(from, to uuid.UUID) Relationship {
	if r.person1ID == from {
		r.person1ID = to
	}
	if r.person2ID == from {
		r.person2ID = to
	}
	return r
}

// DedupKey identifies a relationship row up to its stored identity. The
// store treats NULL roles as distinct under uniqueness checks, so duplicate
// suppression happens in code on this key, not via a database constraint.
func (r Relationship) DedupKey() string {
	return fmt.Sprintf("%s|%s|%s|%s", r.person1ID, r.person2ID, r.typ, r.parentRole)
}

// EquivalentTo reports whether two rows represent the same edge. Spouse
// rows are considered equivalent in either direction.
func (r Relationship) EquivalentTo(other Relationship) bool {
	if r.typ != other.typ || r.parentRole != other.parentRole {
		return false
	}
	if r.person1ID == other.person1ID && r.person2ID == other.person2ID {
		return true
	}
	if r.typ == TypeSpouse {
		return r.person1ID == other.person2ID && r.person2ID == other.person1ID
	}
	return false
}
