package gedcom

import "fmt"

// ConsistencyIssueType distinguishes the two directions a cross-reference
// can disagree in.
type ConsistencyIssueType string

const (
	// ChildFamilyMismatch: an individual points at a family via FAMC but the
	// family's child list does not contain the individual.
	ChildFamilyMismatch ConsistencyIssueType = "child-family-mismatch"
	// ParentFamilyMismatch: an individual points at a family via FAMS but the
	// family's spouse pointers do not include the individual.
	ParentFamilyMismatch ConsistencyIssueType = "parent-family-mismatch"
)

// ConsistencyIssue is an advisory cross-reference mismatch. Issues are
// surfaced to the caller but never block an import.
type ConsistencyIssue struct {
	Type        ConsistencyIssueType `json:"type"`
	Description string               `json:"description"`
	AffectedIDs []string             `json:"affectedIds"`
}

// CheckRelationshipConsistency validates that individual→family pointers and
// family→individual pointers agree in both directions. Returns an empty
// slice when all cross-references line up.
func CheckRelationshipConsistency(doc *Document) []ConsistencyIssue {
	issues := []ConsistencyIssue{}

	for _, ind := range doc.Individuals {
		if ind.FamilyChild != "" {
			fam := doc.Family(ind.FamilyChild)
			if fam == nil {
				issues = append(issues, ConsistencyIssue{
					Type: ChildFamilyMismatch,
					Description: fmt.Sprintf(
						"individual %s (%s) references missing family %s as child",
						ind.XRef, ind.Name, ind.FamilyChild),
					AffectedIDs: []string{ind.XRef, ind.FamilyChild},
				})
			} else if !containsString(fam.Children, ind.XRef) {
				issues = append(issues, ConsistencyIssue{
					Type: ChildFamilyMismatch,
					Description: fmt.Sprintf(
						"individual %s (%s) claims family %s as child family, but is not in its child list",
						ind.XRef, ind.Name, fam.XRef),
					AffectedIDs: []string{ind.XRef, fam.XRef},
				})
			}
		}

		for _, famXRef := range ind.FamilySpouse {
			fam := doc.Family(famXRef)
			if fam == nil {
				issues = append(issues, ConsistencyIssue{
					Type: ParentFamilyMismatch,
					Description: fmt.Sprintf(
						"individual %s (%s) references missing family %s as spouse",
						ind.XRef, ind.Name, famXRef),
					AffectedIDs: []string{ind.XRef, famXRef},
				})
				continue
			}
			if fam.Husband != ind.XRef && fam.Wife != ind.XRef {
				issues = append(issues, ConsistencyIssue{
					Type: ParentFamilyMismatch,
					Description: fmt.Sprintf(
						"individual %s (%s) claims family %s as spouse family, but is not its husband or wife",
						ind.XRef, ind.Name, fam.XRef),
					AffectedIDs: []string{ind.XRef, fam.XRef},
				})
			}
		}
	}

	return issues
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
