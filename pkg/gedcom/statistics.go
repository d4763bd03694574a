package gedcom

// Statistics summarizes a parsed document for preview display.
type Statistics struct {
	IndividualsCount int    `json:"individualsCount"`
	FamiliesCount    int    `json:"familiesCount"`
	EarliestDate     string `json:"earliestDate,omitempty"`
	LatestDate       string `json:"latestDate,omitempty"`
	Version          string `json:"version"`
}

// ExtractStatistics computes record counts and the earliest/latest valid
// dates across all birth and death fields. Normalized dates compare
// correctly as strings regardless of precision ("1950" < "1950-03").
func ExtractStatistics(doc *Document) Statistics {
	stats := Statistics{
		IndividualsCount: len(doc.Individuals),
		FamiliesCount:    len(doc.Families),
		Version:          doc.Version,
	}

	consider := func(dv *DateValue) {
		if dv == nil || !dv.Valid {
			return
		}
		if stats.EarliestDate == "" || dv.Normalized < stats.EarliestDate {
			stats.EarliestDate = dv.Normalized
		}
		if stats.LatestDate == "" || dv.Normalized > stats.LatestDate {
			stats.LatestDate = dv.Normalized
		}
	}

	for _, ind := range doc.Individuals {
		consider(ind.BirthDate)
		consider(ind.DeathDate)
	}

	return stats
}
