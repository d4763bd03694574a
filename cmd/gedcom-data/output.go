package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kindred-app/kindred/pkg/gedcom"
)

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return withCode(exitGeneral, fmt.Errorf("json encode: %w", err))
	}
	return nil
}

// parseFile loads and parses one GEDCOM file. A fatal version problem is a
// document error (exit 2); field-level issues stay on the returned Document.
func parseFile(path string) (*gedcom.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("read %s: %w", path, err))
	}

	doc := gedcom.Parse(string(content))
	if !doc.Success {
		return nil, withCode(exitDocument, fmt.Errorf("%s: %s", path, doc.Error))
	}
	return doc, nil
}
