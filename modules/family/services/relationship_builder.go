package services

import (
	"github.com/google/uuid"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/relationship"
	"github.com/kindred-app/kindred/pkg/gedcom"
)

// BuildRelationships converts family blocks into normalized relationship
// rows: two spouse rows per resolved couple (one per direction) and one
// parentOf row per resolved parent/child pair, tagged with the parent role.
//
// A spouse, parent or child whose cross-reference has no store id (for
// example an individual skipped without a mapping) is silently omitted;
// that is a resolution outcome, not an error.
//
// The result is deduplicated on (person1, person2, type, role): duplicate
// family blocks in the source document must not produce duplicate rows, and
// the store cannot enforce this itself because NULL roles compare distinct
// under naive uniqueness.
func BuildRelationships(families []*gedcom.Family, idMap map[string]uuid.UUID, userID uuid.UUID) []relationship.Relationship {
	var out []relationship.Relationship
	seen := make(map[string]struct{})

	add := func(r relationship.Relationship) {
		key := r.DedupKey()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}

	for _, fam := range families {
		husband, hasHusband := idMap[fam.Husband]
		wife, hasWife := idMap[fam.Wife]

		if hasHusband && hasWife {
			add(relationship.New(userID, husband, wife, relationship.TypeSpouse, relationship.RoleNone))
			add(relationship.New(userID, wife, husband, relationship.TypeSpouse, relationship.RoleNone))
		}

		for _, childXRef := range fam.Children {
			child, hasChild := idMap[childXRef]
			if !hasChild {
				continue
			}
			if hasHusband {
				add(relationship.New(userID, husband, child, relationship.TypeParentOf, relationship.RoleFather))
			}
			if hasWife {
				add(relationship.New(userID, wife, child, relationship.TypeParentOf, relationship.RoleMother))
			}
		}
	}

	return out
}
