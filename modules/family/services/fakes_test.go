package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/person"
	"github.com/kindred-app/kindred/modules/family/domain/aggregates/relationship"
	"github.com/kindred-app/kindred/modules/family/services"
)

// memPersonRepo is an in-memory person.Repository with insertion order
// preserved so tests are deterministic.
type memPersonRepo struct {
	items []person.Person
}

func (m *memPersonRepo) GetByID(_ context.Context, id uuid.UUID) (person.Person, error) {
	for _, p := range m.items {
		if p.ID() == id {
			return p, nil
		}
	}
	return person.Person{}, person.ErrNotFound
}

func (m *memPersonRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]person.Person, error) {
	var out []person.Person
	for _, p := range m.items {
		if p.UserID() == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPersonRepo) Create(_ context.Context, p person.Person) (person.Person, error) {
	stored := person.Hydrate(
		uuid.New(), p.UserID(), p.FirstName(), p.LastName(), p.Gender(),
		p.BirthDate(), p.DeathDate(), p.PhotoURL(), time.Now(), time.Now(),
	)
	if p.ID() != uuid.Nil {
		stored = person.Hydrate(
			p.ID(), p.UserID(), p.FirstName(), p.LastName(), p.Gender(),
			p.BirthDate(), p.DeathDate(), p.PhotoURL(), time.Now(), time.Now(),
		)
	}
	m.items = append(m.items, stored)
	return stored, nil
}

func (m *memPersonRepo) Update(_ context.Context, p person.Person) (person.Person, error) {
	for i, existing := range m.items {
		if existing.ID() == p.ID() {
			m.items[i] = p
			return p, nil
		}
	}
	return person.Person{}, person.ErrNotFound
}

func (m *memPersonRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range m.items {
		if p.ID() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return person.ErrNotFound
}

func (m *memPersonRepo) snapshot() []person.Person {
	return append([]person.Person(nil), m.items...)
}

// memRelRepo is an in-memory relationship.Repository with optional error
// injection for testing rollback behavior.
type memRelRepo struct {
	items []relationship.Relationship

	failCreate error
	failUpdate error
	failDelete error
}

func (m *memRelRepo) GetByPerson(_ context.Context, personID uuid.UUID) ([]relationship.Relationship, error) {
	var out []relationship.Relationship
	for _, r := range m.items {
		if r.Involves(personID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRelRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]relationship.Relationship, error) {
	var out []relationship.Relationship
	for _, r := range m.items {
		if r.UserID() == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRelRepo) Create(_ context.Context, r relationship.Relationship) (relationship.Relationship, error) {
	if m.failCreate != nil {
		return relationship.Relationship{}, m.failCreate
	}
	id := r.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}
	stored := relationship.Hydrate(id, r.Person1ID(), r.Person2ID(), r.Type(), r.ParentRole(), r.UserID(), time.Now())
	m.items = append(m.items, stored)
	return stored, nil
}

func (m *memRelRepo) Update(_ context.Context, r relationship.Relationship) (relationship.Relationship, error) {
	if m.failUpdate != nil {
		return relationship.Relationship{}, m.failUpdate
	}
	for i, existing := range m.items {
		if existing.ID() == r.ID() {
			m.items[i] = r
			return r, nil
		}
	}
	return relationship.Relationship{}, relationship.ErrNotFound
}

func (m *memRelRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.failDelete != nil {
		return m.failDelete
	}
	for i, r := range m.items {
		if r.ID() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return relationship.ErrNotFound
}

func (m *memRelRepo) DeleteByPerson(_ context.Context, personID uuid.UUID) error {
	kept := m.items[:0:0]
	for _, r := range m.items {
		if !r.Involves(personID) {
			kept = append(kept, r)
		}
	}
	m.items = kept
	return nil
}

func (m *memRelRepo) snapshot() []relationship.Relationship {
	return append([]relationship.Relationship(nil), m.items...)
}

// snapshotTx mimics a database transaction over the in-memory repos: on
// error every repo is restored to its pre-transaction state.
func snapshotTx(persons *memPersonRepo, rels *memRelRepo) services.TxRunner {
	return func(ctx context.Context, fn func(context.Context) error) error {
		personsBefore := persons.snapshot()
		relsBefore := rels.snapshot()
		if err := fn(ctx); err != nil {
			persons.items = personsBefore
			rels.items = relsBefore
			return err
		}
		return nil
	}
}

func zeroTime() time.Time {
	return time.Time{}
}

func seedPerson(repo *memPersonRepo, userID uuid.UUID, first, last string, opts ...person.Option) person.Person {
	p, _ := repo.Create(context.Background(), person.New(userID, first, last, opts...))
	return p
}

func seedRel(repo *memRelRepo, userID, p1, p2 uuid.UUID, typ relationship.Type, role relationship.ParentRole) relationship.Relationship {
	r, _ := repo.Create(context.Background(), relationship.New(userID, p1, p2, typ, role))
	return r
}
