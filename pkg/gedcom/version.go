package gedcom

import "fmt"

// SupportedVersions is the set of GEDCOM versions this importer accepts.
var SupportedVersions = []string{"5.5.1", "7.0"}

// VersionCheck is the outcome of validating a detected version.
type VersionCheck struct {
	Valid bool
	Err   string
}

// DetectVersion scans the document header for a version declaration.
// Both the 5.5.1 form (HEAD > GEDC > VERS) and the 7.0 header layout are
// accepted. Returns the empty string when no declaration is present.
func DetectVersion(roots []*RawRecord) string {
	for _, root := range roots {
		if root.Tag != "HEAD" {
			continue
		}
		if gedc := root.Child("GEDC"); gedc != nil {
			if v := gedc.ChildValue("VERS"); v != "" {
				return v
			}
		}
		if v := root.ChildValue("VERS"); v != "" {
			return v
		}
	}
	return ""
}

// ValidateVersion accepts only the versions in SupportedVersions. A missing
// version is reported distinctly from an unsupported one.
func ValidateVersion(version string) VersionCheck {
	if version == "" {
		return VersionCheck{Err: "GEDCOM version not found in file header"}
	}
	for _, v := range SupportedVersions {
		if version == v {
			return VersionCheck{Valid: true}
		}
	}
	return VersionCheck{
		Err: fmt.Sprintf("GEDCOM version %s is not supported. Please use version 5.5.1 or 7.0", version),
	}
}
