package gedcom

import (
	"fmt"
	"strings"
)

// Severity classifies a parse issue. Field-level problems are warnings;
// only version problems are fatal and those never reach the Issue list.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is a line-scoped parse problem. Line numbers are 1-based.
type Issue struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Individual is a parsed INDI record. Cross-reference ids are document-local
// and carry no meaning outside the Document they came from.
type Individual struct {
	XRef         string     `json:"xref"`
	Name         string     `json:"name"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Sex          string     `json:"sex"`
	BirthDate    *DateValue `json:"birthDate,omitempty"`
	DeathDate    *DateValue `json:"deathDate,omitempty"`
	FamilyChild  string     `json:"familyChild,omitempty"`  // FAMC: family this person is a child of
	FamilySpouse []string   `json:"familySpouse,omitempty"` // FAMS: families this person is a spouse in
	FileRef      string     `json:"fileRef,omitempty"`      // OBJE > FILE multimedia reference
}

// Family is a parsed FAM record linking up to two spouses and their children.
type Family struct {
	XRef     string   `json:"xref"`
	Husband  string   `json:"husband,omitempty"`
	Wife     string   `json:"wife,omitempty"`
	Children []string `json:"children,omitempty"`
}

// Document is the parser's sole output artifact. It is ephemeral preview
// data: callers key it by an upload identifier and discard it after import.
type Document struct {
	Success     bool          `json:"success"`
	Version     string        `json:"version"`
	Individuals []*Individual `json:"individuals"`
	Families    []*Family     `json:"families"`
	Issues      []Issue       `json:"errors"`
	Error       string        `json:"error,omitempty"`
}

// Individual returns the parsed individual with the given xref, or nil.
func (d *Document) Individual(xref string) *Individual {
	for _, ind := range d.Individuals {
		if ind.XRef == xref {
			return ind
		}
	}
	return nil
}

// Family returns the parsed family with the given xref, or nil.
func (d *Document) Family(xref string) *Family {
	for _, fam := range d.Families {
		if fam.XRef == xref {
			return fam
		}
	}
	return nil
}

// Parse tokenizes and projects a GEDCOM document. It never panics on
// malformed field content: bad lines and unparseable dates become warnings
// on the returned Document. An unsupported or missing version is the one
// fatal case: Success is false and no entities are returned.
func Parse(content string) *Document {
	lines, issues := scanLines(content)
	roots := buildTree(lines)

	version := DetectVersion(roots)
	if check := ValidateVersion(version); !check.Valid {
		return &Document{Version: version, Error: check.Err}
	}

	doc := &Document{Success: true, Version: version, Issues: issues}
	for _, root := range roots {
		switch root.Tag {
		case "INDI":
			doc.Individuals = append(doc.Individuals, projectIndividual(root, doc))
		case "FAM":
			doc.Families = append(doc.Families, projectFamily(root))
		}
	}
	return doc
}

func projectIndividual(rec *RawRecord, doc *Document) *Individual {
	ind := &Individual{XRef: rec.XRef}

	for _, c := range rec.Children {
		switch c.Tag {
		case "NAME":
			ind.Name, ind.FirstName, ind.LastName = ParseName(c.Value)
		case "SEX":
			ind.Sex = strings.ToUpper(strings.TrimSpace(c.Value))
		case "BIRT":
			ind.BirthDate = projectDate(c, "birth", ind.XRef, doc)
		case "DEAT":
			ind.DeathDate = projectDate(c, "death", ind.XRef, doc)
		case "FAMC":
			ind.FamilyChild = trimXRef(c.Value)
		case "FAMS":
			if x := trimXRef(c.Value); x != "" {
				ind.FamilySpouse = append(ind.FamilySpouse, x)
			}
		case "OBJE":
			if f := c.Child("FILE"); f != nil && f.Value != "" {
				ind.FileRef = f.Value
			}
		}
	}
	return ind
}

func projectDate(event *RawRecord, kind, xref string, doc *Document) *DateValue {
	dateRec := event.Child("DATE")
	if dateRec == nil || strings.TrimSpace(dateRec.Value) == "" {
		return nil
	}
	dv := NormalizeDate(dateRec.Value)
	if !dv.Valid {
		doc.Issues = append(doc.Issues, Issue{
			Line:     dateRec.Line,
			Message:  fmt.Sprintf("individual %s: invalid %s date: %s", xref, kind, dv.Err),
			Severity: SeverityWarning,
		})
	}
	return &dv
}

func projectFamily(rec *RawRecord) *Family {
	fam := &Family{XRef: rec.XRef}
	for _, c := range rec.Children {
		switch c.Tag {
		case "HUSB":
			fam.Husband = trimXRef(c.Value)
		case "WIFE":
			fam.Wife = trimXRef(c.Value)
		case "CHIL":
			if x := trimXRef(c.Value); x != "" {
				fam.Children = append(fam.Children, x)
			}
		}
	}
	return fam
}

// ParseName splits a GEDCOM personal name into display, first and last
// parts. It handles the GEDCOM "Given /Surname/ suffix" convention and
// falls back to last-token-as-surname for plain names.
func ParseName(value string) (display, first, last string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", ""
	}

	if open := strings.Index(value, "/"); open >= 0 {
		if close := strings.Index(value[open+1:], "/"); close >= 0 {
			first = strings.TrimSpace(value[:open])
			last = strings.TrimSpace(value[open+1 : open+1+close])
			suffix := strings.TrimSpace(value[open+close+2:])
			display = strings.Join(nonEmpty(first, last, suffix), " ")
			return display, first, last
		}
	}

	fields := strings.Fields(value)
	display = strings.Join(fields, " ")
	if len(fields) == 1 {
		return display, fields[0], ""
	}
	return display, strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func trimXRef(v string) string {
	return strings.Trim(strings.TrimSpace(v), "@")
}
