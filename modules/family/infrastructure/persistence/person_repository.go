package persistence

import (
	"context"
	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/person"
	"github.com/kindred-app/kindred/pkg/composables"
)

const (
	personSelectQuery = `
		SELECT
			p.id,
			p.user_id,
			p.first_name,
			p.last_name,
			p.gender,
			p.birth_date,
			p.death_date,
			p.photo_url,
			p.created_at,
			p.updated_at
		FROM persons p`

	personByIDQuery   = personSelectQuery + ` WHERE p.id = $1`
	personByUserQuery = personSelectQuery + ` WHERE p.user_id = $1 ORDER BY p.last_name, p.first_name, p.id`

	personInsertQuery = `
		INSERT INTO persons (id, user_id, first_name, last_name, gender, birth_date, death_date, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, first_name, last_name, gender, birth_date, death_date, photo_url, created_at, updated_at`

	personUpdateQuery = `
		UPDATE persons
		SET first_name = $2,
			last_name = $3,
			gender = $4,
			birth_date = $5,
			death_date = $6,
			photo_url = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, first_name, last_name, gender, birth_date, death_date, photo_url, created_at, updated_at`

	personDeleteQuery = `DELETE FROM persons WHERE id = $1`
)

type PgPersonRepository struct{}

func NewPersonRepository() person.Repository {
	return &PgPersonRepository{}
}

func (g *PgPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	p, err := scanPerson(tx.QueryRow(ctx, personByIDQuery, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, errors.Wrap(err, "failed to get person by id")
	}
	return p, nil
}

func (g *PgPersonRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, personByUserQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list persons by user")
	}
	defer rows.Close()

	var out []person.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan person row")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (g *PgPersonRepository) Create(ctx context.Context, p person.Person) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	id := p.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	created, err := scanPerson(tx.QueryRow(ctx, personInsertQuery,
		id,
		p.UserID(),
		p.FirstName(),
		p.LastName(),
		string(p.Gender()),
		nullableString(p.BirthDate()),
		nullableString(p.DeathDate()),
		nullableString(p.PhotoURL()),
	))
	if err != nil {
		return person.Person{}, errors.Wrap(err, "failed to create person")
	}
	return created, nil
}

func (g *PgPersonRepository) Update(ctx context.Context, p person.Person) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	updated, err := scanPerson(tx.QueryRow(ctx, personUpdateQuery,
		p.ID(),
		p.FirstName(),
		p.LastName(),
		string(p.Gender()),
		nullableString(p.BirthDate()),
		nullableString(p.DeathDate()),
		nullableString(p.PhotoURL()),
	))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, errors.Wrap(err, "failed to update person")
	}
	return updated, nil
}

func (g *PgPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, personDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete person")
	}
	if tag.RowsAffected() == 0 {
		return person.ErrNotFound
	}
	return nil
}

func scanPerson(row pgx.Row) (person.Person, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		firstName string
		lastName  string
		gender    string
		birthDate *string
		deathDate *string
		photoURL  *string
		createdAt pgTimestamp
		updatedAt pgTimestamp
	)
	if err := row.Scan(
		&id, &userID, &firstName, &lastName, &gender,
		&birthDate, &deathDate, &photoURL, &createdAt, &updatedAt,
	); err != nil {
		return person.Person{}, err
	}
	return person.Hydrate(
		id,
		userID,
		firstName,
		lastName,
		person.Gender(gender),
		deref(birthDate),
		deref(deathDate),
		deref(photoURL),
		createdAt.Time,
		updatedAt.Time,
	), nil
}
