package services

import (
	"github.com/google/uuid"

	"github.com/kindred-app/kindred/pkg/gedcom"
)

// Resolution is the caller's decision for one duplicate candidate.
type Resolution string

const (
	ResolutionMerge       Resolution = "merge"
	ResolutionSkip        Resolution = "skip"
	ResolutionImportAsNew Resolution = "import_as_new"
)

// ResolutionDecision is supplied per individual that had duplicate
// candidates. Individuals without a decision are imported as new.
type ResolutionDecision struct {
	GedcomID         string     `json:"gedcomId"`
	Resolution       Resolution `json:"resolution"`
	ExistingPersonID uuid.UUID  `json:"existingPersonId,omitempty"`
}

// MergeAssignment queues a parsed individual's fields for merging into an
// existing person.
type MergeAssignment struct {
	Individual *gedcom.Individual
	PersonID   uuid.UUID
}

// ResolutionPlan partitions parsed individuals by decision. The id map is
// the bridge from document-local cross-references to store identities; it
// includes skipped individuals so relationships referencing them still
// resolve.
type ResolutionPlan struct {
	ToImport           []*gedcom.Individual
	ToMerge            []MergeAssignment
	GedcomIDToPersonID map[string]uuid.UUID
}

// ApplyResolutions partitions individuals according to the supplied
// decisions. The decision lookup is built per call; it is request state,
// not module state.
//
// An unknown resolution value falls through to import-as-new; the default
// case below is the single place to change if fail-closed is ever preferred.
func ApplyResolutions(individuals []*gedcom.Individual, decisions []ResolutionDecision) ResolutionPlan {
	byID := make(map[string]ResolutionDecision, len(decisions))
	for _, d := range decisions {
		byID[d.GedcomID] = d
	}

	plan := ResolutionPlan{
		GedcomIDToPersonID: make(map[string]uuid.UUID),
	}

	for _, ind := range individuals {
		decision, ok := byID[ind.XRef]
		if !ok {
			plan.ToImport = append(plan.ToImport, ind)
			continue
		}

		switch decision.Resolution {
		case ResolutionMerge:
			if decision.ExistingPersonID == uuid.Nil {
				plan.ToImport = append(plan.ToImport, ind)
				continue
			}
			plan.GedcomIDToPersonID[ind.XRef] = decision.ExistingPersonID
			plan.ToMerge = append(plan.ToMerge, MergeAssignment{Individual: ind, PersonID: decision.ExistingPersonID})
		case ResolutionSkip:
			if decision.ExistingPersonID != uuid.Nil {
				plan.GedcomIDToPersonID[ind.XRef] = decision.ExistingPersonID
			}
		case ResolutionImportAsNew:
			plan.ToImport = append(plan.ToImport, ind)
		default:
			plan.ToImport = append(plan.ToImport, ind)
		}
	}

	return plan
}
