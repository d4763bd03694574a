package services

import (
	"context"
	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/person"
	"github.com/kindred-app/kindred/modules/family/domain/aggregates/relationship"
	"github.com/kindred-app/kindred/pkg/composables"
	"github.com/kindred-app/kindred/pkg/gedcom"
)

var ErrPreviewNotFound = stderrors.New("upload preview not found or expired")

// ImportResult summarizes a committed import.
type ImportResult struct {
	Success              bool                 `json:"success"`
	PersonsCreated       int                  `json:"personsCreated"`
	PersonsUpdated       int                  `json:"personsUpdated"`
	RelationshipsCreated int                  `json:"relationshipsCreated"`
	GedcomIDToPersonID   map[string]uuid.UUID `json:"gedcomIdToPersonId"`
}

// ImportService turns a parsed document plus the caller's duplicate
// decisions into store mutations: insert new people, fold merged people's
// fields into their existing records, and insert the relationship rows the
// family blocks imply. Everything runs in one transaction.
type ImportService struct {
	persons       person.Repository
	relationships relationship.Repository
	previews      *PreviewStore
	inTx          TxRunner
	log           *logrus.Logger
}

type ImportServiceOption func(*ImportService)

func WithImportTxRunner(run TxRunner) ImportServiceOption {
	return func(s *ImportService) { s.inTx = run }
}

func NewImportService(
	persons person.Repository,
	relationships relationship.Repository,
	previews *PreviewStore,
	log *logrus.Logger,
	opts ...ImportServiceOption,
) *ImportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &ImportService{
		persons:       persons,
		relationships: relationships,
		previews:      previews,
		inTx:          composables.InTx,
		log:           log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportFromPreview executes the import for a previously parsed upload and
// invalidates the preview once the transaction commits.
func (s *ImportService) ImportFromPreview(ctx context.Context, uploadID string, decisions []ResolutionDecision) (ImportResult, error) {
	doc, ok := s.previews.Get(uploadID)
	if !ok {
		return ImportResult{}, ErrPreviewNotFound
	}

	result, err := s.Execute(ctx, doc, decisions)
	if err != nil {
		return ImportResult{}, err
	}

	s.previews.Delete(uploadID)
	return result, nil
}

// Execute applies the resolution plan and the document's family blocks to
// the store. On any failure the transaction rolls back: no person or
// relationship row from this call remains visible.
func (s *ImportService) Execute(ctx context.Context, doc *gedcom.Document, decisions []ResolutionDecision) (ImportResult, error) {
	userID, err := composables.UseUserID(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	plan := ApplyResolutions(doc.Individuals, decisions)

	var result ImportResult
	err = s.inTx(ctx, func(txCtx context.Context) error {
		idMap := make(map[string]uuid.UUID, len(plan.GedcomIDToPersonID))
		for k, v := range plan.GedcomIDToPersonID {
			idMap[k] = v
		}

		created := 0
		for _, ind := range plan.ToImport {
			p, err := s.persons.Create(txCtx, individualToPerson(ind, userID))
			if err != nil {
				return errors.Wrap(err, "failed to insert imported person")
			}
			idMap[ind.XRef] = p.ID()
			created++
		}

		updated := 0
		for _, m := range plan.ToMerge {
			existing, err := s.persons.GetByID(txCtx, m.PersonID)
			if err != nil {
				return errors.Wrap(err, "failed to load merge target")
			}
			if existing.UserID() != userID {
				return ErrNotOwned
			}
			merged := MergeFields(individualToPerson(m.Individual, userID), existing)
			existing = existing.
				SetName(merged.FirstName, merged.LastName).
				SetGender(merged.Gender).
				SetBirthDate(merged.BirthDate).
				SetDeathDate(merged.DeathDate).
				SetPhotoURL(merged.PhotoURL)
			if _, err := s.persons.Update(txCtx, existing); err != nil {
				return errors.Wrap(err, "failed to update merged person")
			}
			updated++
		}

		existingRels, err := s.relationships.GetByUser(txCtx, userID)
		if err != nil {
			return err
		}

		inserted := 0
		for _, r := range BuildRelationships(doc.Families, idMap, userID) {
			if equivalentToAny(r, existingRels) {
				continue
			}
			createdRel, err := s.relationships.Create(txCtx, r)
			if err != nil {
				return errors.Wrap(err, "failed to insert relationship")
			}
			existingRels = append(existingRels, createdRel)
			inserted++
		}

		result = ImportResult{
			Success:              true,
			PersonsCreated:       created,
			PersonsUpdated:       updated,
			RelationshipsCreated: inserted,
			GedcomIDToPersonID:   idMap,
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"created":       result.PersonsCreated,
		"updated":       result.PersonsUpdated,
		"relationships": result.RelationshipsCreated,
	}).Info("gedcom import committed")
	return result, nil
}

// individualToPerson maps a parsed individual onto an unsaved person
// aggregate. Only valid normalized dates carry over; the approximate/range
// modifier never leaks into the stored date string.
func individualToPerson(ind *gedcom.Individual, userID uuid.UUID) person.Person {
	first := ind.FirstName
	if first == "" && ind.LastName == "" {
		first = ind.Name
	}
	return person.New(userID, first, ind.LastName,
		person.WithGender(person.GenderFromSexCode(ind.Sex)),
		person.WithBirthDate(normalizedDate(ind.BirthDate)),
		person.WithDeathDate(normalizedDate(ind.DeathDate)),
		person.WithPhotoURL(ind.FileRef),
	)
}
