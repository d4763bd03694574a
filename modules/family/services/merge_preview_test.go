package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/person"
	"github.com/kindred-app/kindred/modules/family/domain/aggregates/relationship"
	"github.com/kindred-app/kindred/modules/family/services"
)

func TestSelectBestValue(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		want   string
	}{
		{"both empty", "", "", ""},
		{"source only", "Smith", "", "Smith"},
		{"target only", "", "Smith", "Smith"},
		{"more precise date wins from source", "1950-03-15", "1950", "1950-03-15"},
		{"more precise date wins from target", "1950", "1950-03-15", "1950-03-15"},
		{"equal precision ties to target", "1950-03-14", "1950-03-15", "1950-03-15"},
		{"year-month beats year", "1950-03", "1950", "1950-03"},
		{"longer string wins", "Anne-Marie", "Anne", "Anne-Marie"},
		{"equal length ties to target", "Anna", "Nina", "Nina"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.SelectBestValue(tt.source, tt.target))
		})
	}
}

func TestValidateMerge(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()

	male := person.Hydrate(uuid.New(), userID, "A", "B", person.GenderMale, "", "", "", zeroTime(), zeroTime())
	female := person.Hydrate(uuid.New(), userID, "C", "D", person.GenderFemale, "", "", "", zeroTime(), zeroTime())
	unspecified := person.Hydrate(uuid.New(), userID, "E", "F", person.GenderUnspecified, "", "", "", zeroTime(), zeroTime())
	foreign := person.Hydrate(uuid.New(), otherUser, "G", "H", person.GenderMale, "", "", "", zeroTime(), zeroTime())

	actor := services.Actor{ID: userID}

	t.Run("gender mismatch blocks", func(t *testing.T) {
		errs := services.ValidateMerge(male, female, actor)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "male")
		assert.Contains(t, errs[0], "female")
	})

	t.Run("unspecified is compatible with anything", func(t *testing.T) {
		assert.Empty(t, services.ValidateMerge(male, unspecified, actor))
		assert.Empty(t, services.ValidateMerge(unspecified, female, actor))
	})

	t.Run("different owners block", func(t *testing.T) {
		errs := services.ValidateMerge(male, foreign, actor)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0], "different users")
	})

	t.Run("self profile person is protected", func(t *testing.T) {
		guarded := services.Actor{ID: userID, DefaultPersonID: male.ID()}
		errs := services.ValidateMerge(male, unspecified, guarded)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0], "own profile")

		errs = services.ValidateMerge(unspecified, male, guarded)
		require.NotEmpty(t, errs)
	})
}

func TestDetectRelationshipConflicts(t *testing.T) {
	userID := uuid.New()
	source := uuid.New()
	target := uuid.New()
	motherX := uuid.New()
	motherY := uuid.New()

	motherRel := func(parent, child uuid.UUID) relationship.Relationship {
		return relationship.New(userID, parent, child, relationship.TypeParentOf, relationship.RoleMother)
	}

	t.Run("different mothers conflict", func(t *testing.T) {
		conflicts := services.DetectRelationshipConflicts(
			source, target,
			[]relationship.Relationship{motherRel(motherX, source)},
			[]relationship.Relationship{motherRel(motherY, target)},
		)
		assert.Equal(t, []relationship.ParentRole{relationship.RoleMother}, conflicts)
	})

	t.Run("same mother is no conflict", func(t *testing.T) {
		conflicts := services.DetectRelationshipConflicts(
			source, target,
			[]relationship.Relationship{motherRel(motherX, source)},
			[]relationship.Relationship{motherRel(motherX, target)},
		)
		assert.Empty(t, conflicts)
	})

	t.Run("one-sided mother is no conflict", func(t *testing.T) {
		conflicts := services.DetectRelationshipConflicts(
			source, target,
			[]relationship.Relationship{motherRel(motherX, source)},
			nil,
		)
		assert.Empty(t, conflicts)
	})

	t.Run("mother and father conflicts are independent", func(t *testing.T) {
		fatherRel := func(parent, child uuid.UUID) relationship.Relationship {
			return relationship.New(userID, parent, child, relationship.TypeParentOf, relationship.RoleFather)
		}
		conflicts := services.DetectRelationshipConflicts(
			source, target,
			[]relationship.Relationship{motherRel(motherX, source), fatherRel(uuid.New(), source)},
			[]relationship.Relationship{motherRel(motherY, target), fatherRel(uuid.New(), target)},
		)
		assert.Equal(t, []relationship.ParentRole{relationship.RoleMother, relationship.RoleFather}, conflicts)
	})
}

func TestGenerateMergePreview_ConflictsWarnButDoNotBlock(t *testing.T) {
	userID := uuid.New()
	actor := services.Actor{ID: userID}

	source := person.Hydrate(uuid.New(), userID, "Jon", "Smith", person.GenderMale, "1950", "", "", zeroTime(), zeroTime())
	target := person.Hydrate(uuid.New(), userID, "John", "Smith", person.GenderMale, "1950-01-15", "", "https://p.example/b.jpg", zeroTime(), zeroTime())

	sourceRels := []relationship.Relationship{
		relationship.New(userID, uuid.New(), source.ID(), relationship.TypeParentOf, relationship.RoleMother),
	}
	targetRels := []relationship.Relationship{
		relationship.New(userID, uuid.New(), target.ID(), relationship.TypeParentOf, relationship.RoleMother),
	}

	preview := services.GenerateMergePreview(source, target, sourceRels, targetRels, actor)

	assert.True(t, preview.CanMerge, "conflicts are warnings, not blockers")
	assert.Empty(t, preview.Validation.Errors)
	assert.Equal(t, []relationship.ParentRole{relationship.RoleMother}, preview.Validation.ConflictFields)
	require.Len(t, preview.Validation.Warnings, 1)

	assert.Equal(t, "John", preview.Merged.FirstName)
	assert.Equal(t, "1950-01-15", preview.Merged.BirthDate)
	assert.Equal(t, "https://p.example/b.jpg", preview.Merged.PhotoURL)
	require.Len(t, preview.RelationshipsToTransfer, 1)
	require.Len(t, preview.Comparison, 6)
}

func TestGenerateMergePreview_SkipsDuplicateTransfers(t *testing.T) {
	userID := uuid.New()
	spouse := uuid.New()

	source := person.Hydrate(uuid.New(), userID, "A", "B", person.GenderUnspecified, "", "", "", zeroTime(), zeroTime())
	target := person.Hydrate(uuid.New(), userID, "A", "B", person.GenderUnspecified, "", "", "", zeroTime(), zeroTime())

	sourceRels := []relationship.Relationship{
		relationship.New(userID, source.ID(), spouse, relationship.TypeSpouse, relationship.RoleNone),
		// Spouse edge between source and target collapses to a self-loop.
		relationship.New(userID, source.ID(), target.ID(), relationship.TypeSpouse, relationship.RoleNone),
	}
	targetRels := []relationship.Relationship{
		relationship.New(userID, spouse, target.ID(), relationship.TypeSpouse, relationship.RoleNone),
	}

	preview := services.GenerateMergePreview(source, target, sourceRels, targetRels, services.Actor{ID: userID})

	// The spouse edge to the same person already exists on the target (in
	// the opposite direction) and the source↔target edge collapses.
	assert.Empty(t, preview.RelationshipsToTransfer)
}
