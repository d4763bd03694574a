package gedcom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRelationshipConsistency_Agrees(t *testing.T) {
	doc := Parse(sampleFamilyDoc)
	require.True(t, doc.Success)

	issues := CheckRelationshipConsistency(doc)
	assert.Empty(t, issues)
}

func TestCheckRelationshipConsistency_ChildNotInFamilyList(t *testing.T) {
	doc := &Document{
		Success: true,
		Individuals: []*Individual{
			{XRef: "I1", Name: "Peter Smith", FamilyChild: "F1"},
		},
		Families: []*Family{
			{XRef: "F1", Husband: "I9", Children: []string{"I7"}},
		},
	}

	issues := CheckRelationshipConsistency(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, ChildFamilyMismatch, issues[0].Type)
	assert.Contains(t, issues[0].Description, "I1")
	assert.Equal(t, []string{"I1", "F1"}, issues[0].AffectedIDs)
}

func TestCheckRelationshipConsistency_SpouseNotInFamily(t *testing.T) {
	doc := &Document{
		Success: true,
		Individuals: []*Individual{
			{XRef: "I1", Name: "John Smith", FamilySpouse: []string{"F1"}},
		},
		Families: []*Family{
			{XRef: "F1", Husband: "I2", Wife: "I3"},
		},
	}

	issues := CheckRelationshipConsistency(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, ParentFamilyMismatch, issues[0].Type)
	assert.Equal(t, []string{"I1", "F1"}, issues[0].AffectedIDs)
}

func TestCheckRelationshipConsistency_MissingFamilyReference(t *testing.T) {
	doc := &Document{
		Success: true,
		Individuals: []*Individual{
			{XRef: "I1", FamilyChild: "F404"},
			{XRef: "I2", FamilySpouse: []string{"F404"}},
		},
	}

	issues := CheckRelationshipConsistency(doc)
	require.Len(t, issues, 2)
	assert.Equal(t, ChildFamilyMismatch, issues[0].Type)
	assert.Equal(t, ParentFamilyMismatch, issues[1].Type)
}
