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
)

var (
	ErrSourceNotFound = stderrors.New("source person not found")
	ErrTargetNotFound = stderrors.New("target person not found")
	ErrNotOwned       = stderrors.New("person not owned by acting user")
	ErrMergeBlocked   = stderrors.New("merge validation failed")
)

// MergeResult summarizes a committed merge.
type MergeResult struct {
	Success                  bool         `json:"success"`
	TargetID                 uuid.UUID    `json:"targetId"`
	SourceID                 uuid.UUID    `json:"sourceId"`
	RelationshipsTransferred int          `json:"relationshipsTransferred"`
	MergedData               MergedFields `json:"mergedData"`
}

// MergeService combines two stored people into one: the target survives
// with merged field values and the source's transferable relationships; the
// source is deleted. The whole operation runs in one transaction: if any
// step fails, no partial state is visible.
type MergeService struct {
	persons       person.Repository
	relationships relationship.Repository
	inTx          TxRunner
	log           *logrus.Logger
}

type MergeServiceOption func(*MergeService)

// WithMergeTxRunner overrides the transaction runner. Tests use this to
// substitute snapshot/rollback semantics over in-memory repositories.
func WithMergeTxRunner(run TxRunner) MergeServiceOption {
	return func(s *MergeService) { s.inTx = run }
}

func NewMergeService(persons person.Repository, relationships relationship.Repository, log *logrus.Logger, opts ...MergeServiceOption) *MergeService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &MergeService{
		persons:       persons,
		relationships: relationships,
		inTx:          composables.InTx,
		log:           log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview computes the merge preview for a source/target pair without
// touching the store beyond reads.
func (s *MergeService) Preview(ctx context.Context, sourceID, targetID uuid.UUID, actor Actor) (MergePreview, error) {
	source, target, err := s.loadPair(ctx, sourceID, targetID)
	if err != nil {
		return MergePreview{}, err
	}

	sourceRels, err := s.relationships.GetByPerson(ctx, sourceID)
	if err != nil {
		return MergePreview{}, err
	}
	targetRels, err := s.relationships.GetByPerson(ctx, targetID)
	if err != nil {
		return MergePreview{}, err
	}

	return GenerateMergePreview(source, target, sourceRels, targetRels, actor), nil
}

// ExecuteMerge runs the full merge state machine inside one transaction:
// load and validate both people, write merged fields onto the target,
// resolve parent conflicts by dropping the target's conflicting rows,
// transfer the source's relationships, delete the source.
//
// Validation is re-checked here even after a successful preview, since
// store state may have changed in between.
func (s *MergeService) ExecuteMerge(ctx context.Context, sourceID, targetID uuid.UUID, actor Actor) (MergeResult, error) {
	var result MergeResult

	err := s.inTx(ctx, func(txCtx context.Context) error {
		source, target, err := s.loadPair(txCtx, sourceID, targetID)
		if err != nil {
			return err
		}

		if source.UserID() != actor.ID || target.UserID() != actor.ID {
			return ErrNotOwned
		}
		if verrs := ValidateMerge(source, target, actor); len(verrs) > 0 {
			return errors.Wrap(ErrMergeBlocked, verrs[0])
		}

		sourceRels, err := s.relationships.GetByPerson(txCtx, sourceID)
		if err != nil {
			return err
		}
		targetRels, err := s.relationships.GetByPerson(txCtx, targetID)
		if err != nil {
			return err
		}

		merged := MergeFields(source, target)
		target = target.
			SetName(merged.FirstName, merged.LastName).
			SetGender(merged.Gender).
			SetBirthDate(merged.BirthDate).
			SetDeathDate(merged.DeathDate).
			SetPhotoURL(merged.PhotoURL)
		if _, err := s.persons.Update(txCtx, target); err != nil {
			return errors.Wrap(err, "failed to write merged fields")
		}

		// Conflicting parent rows on the target are dropped so the
		// source's row takes their place after transfer. Shared or
		// one-sided parents are left alone.
		conflicts := DetectRelationshipConflicts(sourceID, targetID, sourceRels, targetRels)
		remaining := targetRels[:0:0]
		remaining = append(remaining, targetRels...)
		for _, role := range conflicts {
			for i, r := range remaining {
				if r.Type() == relationship.TypeParentOf && r.ParentRole() == role && r.Person2ID() == targetID {
					if err := s.relationships.Delete(txCtx, r.ID()); err != nil {
						return errors.Wrap(err, "failed to delete conflicting parent relationship")
					}
					remaining = append(remaining[:i], remaining[i+1:]...)
					break
				}
			}
		}

		// Dedup during transfer distinguishes rows already on the target
		// (spouse rows duplicate in either direction) from rows moved in
		// this very loop: a spouse pair's two directions must both
		// transfer, so transferred rows only block exact-key repeats.
		transferredKeys := make(map[string]struct{})
		transferred := 0
		for _, r := range sourceRels {
			rewired := r.Rewire(sourceID, targetID)
			if rewired.Person1ID() == rewired.Person2ID() {
				continue
			}
			if equivalentToAny(rewired, remaining) {
				continue
			}
			if _, dup := transferredKeys[rewired.DedupKey()]; dup {
				continue
			}
			if _, err := s.relationships.Update(txCtx, rewired); err != nil {
				return errors.Wrap(err, "failed to transfer relationship")
			}
			transferredKeys[rewired.DedupKey()] = struct{}{}
			transferred++
		}

		// Whatever still references the source (untransferred duplicates,
		// the spouse row between the pair) goes down with it.
		if err := s.relationships.DeleteByPerson(txCtx, sourceID); err != nil {
			return err
		}
		if err := s.persons.Delete(txCtx, sourceID); err != nil {
			return err
		}

		result = MergeResult{
			Success:                  true,
			TargetID:                 targetID,
			SourceID:                 sourceID,
			RelationshipsTransferred: transferred,
			MergedData:               merged,
		}
		return nil
	})
	if err != nil {
		return MergeResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"source":      sourceID,
		"target":      targetID,
		"transferred": result.RelationshipsTransferred,
	}).Info("merge committed")
	return result, nil
}

func (s *MergeService) loadPair(ctx context.Context, sourceID, targetID uuid.UUID) (person.Person, person.Person, error) {
	source, err := s.persons.GetByID(ctx, sourceID)
	if err != nil {
		if stderrors.Is(err, person.ErrNotFound) {
			return person.Person{}, person.Person{}, ErrSourceNotFound
		}
		return person.Person{}, person.Person{}, err
	}
	target, err := s.persons.GetByID(ctx, targetID)
	if err != nil {
		if stderrors.Is(err, person.ErrNotFound) {
			return person.Person{}, person.Person{}, ErrTargetNotFound
		}
		return person.Person{}, person.Person{}, err
	}
	return source, target, nil
}
