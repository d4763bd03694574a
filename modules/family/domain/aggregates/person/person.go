package person

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("person not found")

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

// Person is a stored family-tree member. Identity (the uuid) is the
// canonical one after import; GEDCOM cross-reference ids never leave the
// parsing layer. Date fields hold normalized strings ("YYYY", "YYYY-MM" or
// "YYYY-MM-DD") and are empty when unknown.
type Person struct {
	id        uuid.UUID
	userID    uuid.UUID
	firstName string
	lastName  string
	gender    Gender
	birthDate string
	deathDate string
	photoURL  string
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Person)

func WithID(id uuid.UUID) Option {
	return func(p *Person) { p.id = id }
}

func WithGender(g Gender) Option {
	return func(p *Person) { p.gender = normalizeGender(g) }
}

func WithBirthDate(d string) Option {
	return func(p *Person) { p.birthDate = strings.TrimSpace(d) }
}

func WithDeathDate(d string) Option {
	return func(p *Person) { p.deathDate = strings.TrimSpace(d) }
}

func WithPhotoURL(u string) Option {
	return func(p *Person) { p.photoURL = strings.TrimSpace(u) }
}

func New(userID uuid.UUID, firstName, lastName string, opts ...Option) Person {
	p := Person{
		userID:    userID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		gender:    GenderUnspecified,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func Hydrate(
	id uuid.UUID,
	userID uuid.UUID,
	firstName string,
	lastName string,
	gender Gender,
	birthDate string,
	deathDate string,
	photoURL string,
	createdAt time.Time,
	updatedAt time.Time,
) Person {
	return Person{
		id:        id,
		userID:    userID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		gender:    normalizeGender(gender),
		birthDate: birthDate,
		deathDate: deathDate,
		photoURL:  photoURL,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p Person) ID() uuid.UUID        { return p.id }
func (p Person) UserID() uuid.UUID    { return p.userID }
func (p Person) FirstName() string    { return p.firstName }
func (p Person) LastName() string     { return p.lastName }
func (p Person) Gender() Gender       { return p.gender }
func (p Person) BirthDate() string    { return p.birthDate }
func (p Person) DeathDate() string    { return p.deathDate }
func (p Person) PhotoURL() string     { return p.photoURL }
func (p Person) CreatedAt() time.Time { return p.createdAt }
func (p Person) UpdatedAt() time.Time { return p.updatedAt }
func (p Person) IsZero() bool         { return p.id == uuid.Nil }

func (p Person) FullName() string {
	full := strings.TrimSpace(p.firstName + " " + p.lastName)
	return full
}

// HasGender reports whether the person carries an actual gender value, as
// opposed to no value or an explicit "unspecified".
func (p Person) HasGender() bool {
	return p.gender == GenderMale || p.gender == GenderFemale
}

func (p Person) SetName(firstName, lastName string) Person {
	p.firstName = strings.TrimSpace(firstName)
	p.lastName = strings.TrimSpace(lastName)
	return p
}

func (p Person) SetGender(g Gender) Person {
	p.gender = normalizeGender(g)
	return p
}

func (p Person) SetBirthDate(d string) Person {
	p.birthDate = strings.TrimSpace(d)
	return p
}

func (p Person) SetDeathDate(d string) Person {
	p.deathDate = strings.TrimSpace(d)
	return p
}

func (p Person) SetPhotoURL(u string) Person {
	p.photoURL = strings.TrimSpace(u)
	return p
}

func normalizeGender(g Gender) Gender {
	switch Gender(strings.ToLower(string(g))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderUnspecified
	}
}

// GenderFromSexCode maps a GEDCOM SEX code to a stored gender value.
func GenderFromSexCode(code string) Gender {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "M":
		return GenderMale
	case "F":
		return GenderFemale
	default:
		return GenderUnspecified
	}
}
