package persistence

import (
	"context"
	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/relationship"
	"github.com/kindred-app/kindred/pkg/composables"
)

const (
	relationshipSelectQuery = `
		SELECT
			r.id,
			r.person1_id,
			r.person2_id,
			r.type,
			r.parent_role,
			r.user_id,
			r.created_at
		FROM relationships r`

	relationshipByPersonQuery = relationshipSelectQuery + ` WHERE r.person1_id = $1 OR r.person2_id = $1 ORDER BY r.created_at, r.id`
	relationshipByUserQuery   = relationshipSelectQuery + ` WHERE r.user_id = $1 ORDER BY r.created_at, r.id`

	relationshipInsertQuery = `
		INSERT INTO relationships (id, person1_id, person2_id, type, parent_role, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, person1_id, person2_id, type, parent_role, user_id, created_at`

	relationshipUpdateQuery = `
		UPDATE relationships
		SET person1_id = $2,
			person2_id = $3,
			type = $4,
			parent_role = $5
		WHERE id = $1
		RETURNING id, person1_id, person2_id, type, parent_role, user_id, created_at`

	relationshipDeleteQuery         = `DELETE FROM relationships WHERE id = $1`
	relationshipDeleteByPersonQuery = `DELETE FROM relationships WHERE person1_id = $1 OR person2_id = $1`
)

type PgRelationshipRepository struct{}

func NewRelationshipRepository() relationship.Repository {
	return &PgRelationshipRepository{}
}

func (g *PgRelationshipRepository) GetByPerson(ctx context.Context, personID uuid.UUID) ([]relationship.Relationship, error) {
	return g.query(ctx, relationshipByPersonQuery, personID)
}

func (g *PgRelationshipRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]relationship.Relationship, error) {
	return g.query(ctx, relationshipByUserQuery, userID)
}

func (g *PgRelationshipRepository) query(ctx context.Context, sql string, arg interface{}) ([]relationship.Relationship, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, sql, arg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list relationships")
	}
	defer rows.Close()

	var out []relationship.Relationship
	for rows.Next() {
		r, err := scanRelationship(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan relationship row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *PgRelationshipRepository) Create(ctx context.Context, r relationship.Relationship) (relationship.Relationship, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return relationship.Relationship{}, err
	}

	id := r.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	created, err := scanRelationship(tx.QueryRow(ctx, relationshipInsertQuery,
		id,
		r.Person1ID(),
		r.Person2ID(),
		string(r.Type()),
		nullableString(string(r.ParentRole())),
		r.UserID(),
	))
	if err != nil {
		return relationship.Relationship{}, errors.Wrap(err, "failed to create relationship")
	}
	return created, nil
}

func (g *PgRelationshipRepository) Update(ctx context.Context, r relationship.Relationship) (relationship.Relationship, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return relationship.Relationship{}, err
	}

	updated, err := scanRelationship(tx.QueryRow(ctx, relationshipUpdateQuery,
		r.ID(),
		r.Person1ID(),
		r.Person2ID(),
		string(r.Type()),
		nullableString(string(r.ParentRole())),
	))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return relationship.Relationship{}, relationship.ErrNotFound
		}
		return relationship.Relationship{}, errors.Wrap(err, "failed to update relationship")
	}
	return updated, nil
}

func (g *PgRelationshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, relationshipDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete relationship")
	}
	if tag.RowsAffected() == 0 {
		return relationship.ErrNotFound
	}
	return nil
}

func (g *PgRelationshipRepository) DeleteByPerson(ctx context.Context, personID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, relationshipDeleteByPersonQuery, personID); err != nil {
		return errors.Wrap(err, "failed to delete relationships by person")
	}
	return nil
}

func scanRelationship(row pgx.Row) (relationship.Relationship, error) {
	var (
		id         uuid.UUID
		person1ID  uuid.UUID
		person2ID  uuid.UUID
		typ        string
		parentRole *string
		userID     uuid.UUID
		createdAt  pgTimestamp
	)
	if err := row.Scan(&id, &person1ID, &person2ID, &typ, &parentRole, &userID, &createdAt); err != nil {
		return relationship.Relationship{}, err
	}
	return relationship.Hydrate(
		id,
		person1ID,
		person2ID,
		relationship.Type(typ),
		relationship.ParentRole(deref(parentRole)),
		userID,
		createdAt.Time,
	), nil
}
