package services

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/person"
	"github.com/kindred-app/kindred/modules/family/domain/aggregates/relationship"
)

var dateShapeRe = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`)

// SelectBestValue picks the winner for one mergeable field. A present value
// beats an absent one; between two date-shaped values the more precise
// (longer) one wins; otherwise the longer string wins; every tie goes to
// the target, i.e. the existing record keeps its value.
func SelectBestValue(source, target string) string {
	if source == "" && target == "" {
		return ""
	}
	if source == "" {
		return target
	}
	if target == "" {
		return source
	}

	if dateShapeRe.MatchString(source) && dateShapeRe.MatchString(target) {
		if len(source) > len(target) {
			return source
		}
		return target
	}

	if len(source) > len(target) {
		return source
	}
	return target
}

// MergedFields is the field-level outcome of merging source into target.
type MergedFields struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Gender    person.Gender `json:"gender"`
	BirthDate string        `json:"birthDate"`
	DeathDate string        `json:"deathDate"`
	PhotoURL  string        `json:"photoUrl"`
}

// FieldComparison shows one field side by side for the preview UI.
type FieldComparison struct {
	Field       string `json:"field"`
	SourceValue string `json:"sourceValue"`
	TargetValue string `json:"targetValue"`
	MergedValue string `json:"mergedValue"`
}

// MergeValidation is the verdict on whether two people may be merged.
// Errors block the merge; warnings (relationship conflicts) do not. They
// only drive overwrite behavior at execution time.
type MergeValidation struct {
	Errors         []string                  `json:"errors"`
	Warnings       []string                  `json:"warnings"`
	ConflictFields []relationship.ParentRole `json:"conflictFields"`
}

// MergePreview is a pure computation result; nothing here is persisted.
type MergePreview struct {
	CanMerge                bool                        `json:"canMerge"`
	Validation              MergeValidation             `json:"validation"`
	Source                  person.Person               `json:"-"`
	Target                  person.Person               `json:"-"`
	Merged                  MergedFields                `json:"merged"`
	Comparison              []FieldComparison           `json:"comparison"`
	RelationshipsToTransfer []relationship.Relationship `json:"-"`
	ExistingRelationships   []relationship.Relationship `json:"-"`
}

// ValidateMerge rejects merges across owners, merges of incompatibly
// gendered people, and any merge touching the acting user's own profile
// person. Gender only conflicts when both sides carry an actual value;
// "unspecified" is compatible with anything.
func ValidateMerge(source, target person.Person, actor Actor) []string {
	var errs []string

	if source.UserID() != target.UserID() {
		errs = append(errs, "cannot merge people belonging to different users")
	} else if actor.ID != uuid.Nil && target.UserID() != actor.ID {
		errs = append(errs, "cannot merge people not owned by the acting user")
	}

	if source.HasGender() && target.HasGender() && source.Gender() != target.Gender() {
		errs = append(errs, fmt.Sprintf("cannot merge a %s person into a %s person", source.Gender(), target.Gender()))
	}

	if actor.DefaultPersonID != uuid.Nil {
		if source.ID() == actor.DefaultPersonID || target.ID() == actor.DefaultPersonID {
			errs = append(errs, "cannot merge the user's own profile person")
		}
	}

	return errs
}

// DetectRelationshipConflicts reports the parent roles for which source and
// target each have a recorded parent and those parents are different
// people. One-sided parents and shared parents are not conflicts.
func DetectRelationshipConflicts(sourceID, targetID uuid.UUID, sourceRels, targetRels []relationship.Relationship) []relationship.ParentRole {
	conflicts := []relationship.ParentRole{}

	for _, role := range []relationship.ParentRole{relationship.RoleMother, relationship.RoleFather} {
		sourceParent := recordedParent(sourceRels, sourceID, role)
		targetParent := recordedParent(targetRels, targetID, role)
		if sourceParent != uuid.Nil && targetParent != uuid.Nil && sourceParent != targetParent {
			conflicts = append(conflicts, role)
		}
	}

	return conflicts
}

// recordedParent returns the parent of the given role recorded for the
// child, or uuid.Nil.
func recordedParent(rels []relationship.Relationship, childID uuid.UUID, role relationship.ParentRole) uuid.UUID {
	for _, r := range rels {
		if r.Type() == relationship.TypeParentOf && r.ParentRole() == role && r.Person2ID() == childID {
			return r.Person1ID()
		}
	}
	return uuid.Nil
}

// MergeFields applies SelectBestValue across every mergeable field. Gender
// follows its own rule: a real value always beats "unspecified", and on a
// real-value tie the target wins (validation has already rejected actual
// mismatches).
func MergeFields(source, target person.Person) MergedFields {
	gender := target.Gender()
	if !target.HasGender() && source.HasGender() {
		gender = source.Gender()
	}

	return MergedFields{
		FirstName: SelectBestValue(source.FirstName(), target.FirstName()),
		LastName:  SelectBestValue(source.LastName(), target.LastName()),
		Gender:    gender,
		BirthDate: SelectBestValue(source.BirthDate(), target.BirthDate()),
		DeathDate: SelectBestValue(source.DeathDate(), target.DeathDate()),
		PhotoURL:  SelectBestValue(source.PhotoURL(), target.PhotoURL()),
	}
}

// GenerateMergePreview composes validation, field merging and conflict
// detection for a source/target pair. Relationship conflicts surface as
// warnings and conflict fields, never as errors: CanMerge can be true with
// conflicts present.
func GenerateMergePreview(
	source, target person.Person,
	sourceRels, targetRels []relationship.Relationship,
	actor Actor,
) MergePreview {
	validation := MergeValidation{
		Errors:         ValidateMerge(source, target, actor),
		Warnings:       []string{},
		ConflictFields: []relationship.ParentRole{},
	}

	conflicts := DetectRelationshipConflicts(source.ID(), target.ID(), sourceRels, targetRels)
	for _, role := range conflicts {
		validation.ConflictFields = append(validation.ConflictFields, role)
		validation.Warnings = append(validation.Warnings,
			fmt.Sprintf("source and target have different recorded %ss; the target's will be replaced", role))
	}

	merged := MergeFields(source, target)

	preview := MergePreview{
		CanMerge:              len(validation.Errors) == 0,
		Validation:            validation,
		Source:                source,
		Target:                target,
		Merged:                merged,
		Comparison:            compareFields(source, target, merged),
		ExistingRelationships: targetRels,
	}

	seen := make(map[string]struct{})
	for _, r := range sourceRels {
		rewired := r.Rewire(source.ID(), target.ID())
		if rewired.Person1ID() == rewired.Person2ID() {
			// A relationship between source and target collapses to a
			// self-loop; it is dropped with the source.
			continue
		}
		if equivalentToAny(rewired, targetRels) {
			continue
		}
		if _, dup := seen[rewired.DedupKey()]; dup {
			continue
		}
		seen[rewired.DedupKey()] = struct{}{}
		preview.RelationshipsToTransfer = append(preview.RelationshipsToTransfer, r)
	}

	return preview
}

func compareFields(source, target person.Person, merged MergedFields) []FieldComparison {
	return []FieldComparison{
		{Field: "firstName", SourceValue: source.FirstName(), TargetValue: target.FirstName(), MergedValue: merged.FirstName},
		{Field: "lastName", SourceValue: source.LastName(), TargetValue: target.LastName(), MergedValue: merged.LastName},
		{Field: "gender", SourceValue: string(source.Gender()), TargetValue: string(target.Gender()), MergedValue: string(merged.Gender)},
		{Field: "birthDate", SourceValue: source.BirthDate(), TargetValue: target.BirthDate(), MergedValue: merged.BirthDate},
		{Field: "deathDate", SourceValue: source.DeathDate(), TargetValue: target.DeathDate(), MergedValue: merged.DeathDate},
		{Field: "photoUrl", SourceValue: source.PhotoURL(), TargetValue: target.PhotoURL(), MergedValue: merged.PhotoURL},
	}
}

func equivalentToAny(r relationship.Relationship, list []relationship.Relationship) bool {
	for _, other := range list {
		if r.EquivalentTo(other) {
			return true
		}
	}
	return false
}
