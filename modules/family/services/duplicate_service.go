package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"

	"github.com/kindred-app/kindred/modules/family/domain/aggregates/person"
	"github.com/kindred-app/kindred/pkg/composables"
	"github.com/kindred-app/kindred/pkg/gedcom"
)

// DetectorOptions tunes duplicate scoring. Exact thresholds are not
// load-bearing for the rest of the pipeline, so they are configuration, not
// constants.
type DetectorOptions struct {
	// MinScore is the total score at or above which an existing person is
	// reported as a duplicate candidate.
	MinScore int
	// MaxFuzzyRank is the largest fuzzy.RankMatch distance still counted as
	// a name match.
	MaxFuzzyRank int
	// MaxBirthYearGap is the largest birth-year difference still counted as
	// date proximity.
	MaxBirthYearGap int
}

func DefaultDetectorOptions() DetectorOptions {
	return DetectorOptions{
		MinScore:        60,
		MaxFuzzyRank:    2,
		MaxBirthYearGap: 2,
	}
}

const (
	scoreExactName      = 60
	scoreFuzzyName      = 40
	scoreLastNameOnly   = 20
	scoreExactBirthDate = 40
	scoreBirthYear      = 30
	scoreBirthYearNear  = 15
	scoreDeathYear      = 10
)

// DuplicateMatch is one existing person resembling a parsed individual.
type DuplicateMatch struct {
	PersonID uuid.UUID `json:"personId"`
	Score    int       `json:"score"`
	Basis    []string  `json:"basis"`
}

// DuplicateCandidate pairs a parsed individual with the existing people it
// may duplicate, strongest match first.
type DuplicateCandidate struct {
	Individual *gedcom.Individual `json:"individual"`
	Matches    []DuplicateMatch   `json:"matches"`
}

type DuplicateService struct {
	persons person.Repository
	opts    DetectorOptions
	log     *logrus.Logger
}

func NewDuplicateService(persons person.Repository, opts DetectorOptions, log *logrus.Logger) *DuplicateService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DuplicateService{persons: persons, opts: opts, log: log}
}

// FindDuplicates compares each parsed individual against the acting user's
// existing people. The store query is pre-scoped by user id, so other
// users' data is never loaded, let alone compared.
func (s *DuplicateService) FindDuplicates(ctx context.Context, individuals []*gedcom.Individual) ([]DuplicateCandidate, error) {
	userID, err := composables.UseUserID(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.persons.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := DetectDuplicates(individuals, existing, s.opts)
	s.log.WithFields(logrus.Fields{
		"individuals": len(individuals),
		"existing":    len(existing),
		"candidates":  len(candidates),
	}).Debug("duplicate detection finished")
	return candidates, nil
}

// DetectDuplicates is the pure scoring core. It is deterministic: equal
// inputs always produce equal output, and matches are ordered by score then
// person id. An individual with no match above MinScore is omitted.
func DetectDuplicates(individuals []*gedcom.Individual, existing []person.Person, opts DetectorOptions) []DuplicateCandidate {
	out := []DuplicateCandidate{}
	if len(existing) == 0 {
		return out
	}

	for _, ind := range individuals {
		var matches []DuplicateMatch
		for _, p := range existing {
			score, basis := scoreSimilarity(ind, p, opts)
			if score >= opts.MinScore {
				matches = append(matches, DuplicateMatch{PersonID: p.ID(), Score: score, Basis: basis})
			}
		}
		if len(matches) == 0 {
			continue
		}
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].Score != matches[j].Score {
				return matches[i].Score > matches[j].Score
			}
			return matches[i].PersonID.String() < matches[j].PersonID.String()
		})
		out = append(out, DuplicateCandidate{Individual: ind, Matches: matches})
	}
	return out
}

func scoreSimilarity(ind *gedcom.Individual, p person.Person, opts DetectorOptions) (int, []string) {
	var (
		score int
		basis []string
	)

	indName := normalizeName(ind.Name)
	personName := normalizeName(p.FullName())

	switch {
	case indName != "" && indName == personName:
		score += scoreExactName
		basis = append(basis, "exact name")
	case indName != "" && personName != "" && fuzzyNameMatch(indName, personName, opts.MaxFuzzyRank):
		score += scoreFuzzyName
		basis = append(basis, "similar name")
	case ind.LastName != "" && strings.EqualFold(ind.LastName, p.LastName()):
		score += scoreLastNameOnly
		basis = append(basis, "same last name")
	}

	indBirth := normalizedDate(ind.BirthDate)
	if indBirth != "" && p.BirthDate() != "" {
		switch {
		case indBirth == p.BirthDate():
			score += scoreExactBirthDate
			basis = append(basis, "same birth date")
		case yearOf(indBirth) == yearOf(p.BirthDate()):
			score += scoreBirthYear
			basis = append(basis, "same birth year")
		case yearGap(indBirth, p.BirthDate()) <= opts.MaxBirthYearGap:
			score += scoreBirthYearNear
			basis = append(basis, "close birth year")
		}
	}

	indDeath := normalizedDate(ind.DeathDate)
	if indDeath != "" && p.DeathDate() != "" && yearOf(indDeath) == yearOf(p.DeathDate()) {
		score += scoreDeathYear
		basis = append(basis, "same death year")
	}

	return score, basis
}

func fuzzyNameMatch(a, b string, maxRank int) bool {
	rank := fuzzy.RankMatchNormalizedFold(a, b)
	if rank < 0 {
		rank = fuzzy.RankMatchNormalizedFold(b, a)
	}
	return rank >= 0 && rank <= maxRank
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func normalizedDate(dv *gedcom.DateValue) string {
	if dv == nil || !dv.Valid {
		return ""
	}
	return dv.Normalized
}

func yearOf(normalized string) string {
	if len(normalized) < 4 {
		return ""
	}
	return normalized[:4]
}

func yearGap(a, b string) int {
	ya, yb := yearOf(a), yearOf(b)
	if ya == "" || yb == "" {
		return 1 << 30
	}
	var na, nb int
	for _, c := range ya {
		na = na*10 + int(c-'0')
	}
	for _, c := range yb {
		nb = nb*10 + int(c-'0')
	}
	if na > nb {
		return na - nb
	}
	return nb - na
}
