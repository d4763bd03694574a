package gedcom

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// maxTagLength mirrors the GEDCOM tag limit.
const maxTagLength = 31

// Line is a single tokenized GEDCOM line: LEVEL [@XREF@] TAG [VALUE].
type Line struct {
	Level      int
	XRef       string // cross-reference id without the @ brackets
	Tag        string
	Value      string
	LineNumber int
}

// parseLine tokenizes one GEDCOM line. The line number is 1-based.
func parseLine(raw string, lineNumber int) (*Line, error) {
	line := strings.TrimRight(raw, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, fmt.Errorf("empty line")
	}

	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("line must have at least a level and a tag")
	}

	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid level number %q", parts[0])
	}
	if level < 0 {
		return nil, fmt.Errorf("level cannot be negative")
	}

	var xref, tag string
	tagIdx := 1
	if strings.HasPrefix(parts[1], "@") && strings.HasSuffix(parts[1], "@") && len(parts[1]) > 2 {
		xref = strings.Trim(parts[1], "@")
		if len(parts) < 3 {
			return nil, fmt.Errorf("line with cross-reference must have a tag")
		}
		tagIdx = 2
	}
	tag = parts[tagIdx]
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	// Everything after the tag is the value, original spacing preserved.
	var value string
	if tagIdx+1 <= len(parts)-1 {
		pos := strings.Index(line, tag)
		if pos >= 0 && pos+len(tag) < len(line) {
			value = strings.TrimLeft(line[pos+len(tag):], " ")
		}
	}

	return &Line{
		Level:      level,
		XRef:       xref,
		Tag:        strings.ToUpper(tag),
		Value:      value,
		LineNumber: lineNumber,
	}, nil
}

func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("empty tag")
	}
	if len(tag) > maxTagLength {
		return fmt.Errorf("tag %q exceeds %d characters", tag, maxTagLength)
	}
	for _, r := range tag {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			continue
		}
		return fmt.Errorf("tag %q contains invalid characters", tag)
	}
	return nil
}

// scanLines tokenizes a whole document, collecting a warning per malformed
// line instead of aborting. Handles LF, CRLF and bare CR line endings.
func scanLines(content string) ([]*Line, []Issue) {
	var (
		lines  []*Line
		issues []Issue
	)

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(splitGedcomLines)

	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		line, err := parseLine(text, n)
		if err != nil {
			issues = append(issues, Issue{
				Line:     n,
				Message:  fmt.Sprintf("skipping malformed line: %s", err.Error()),
				Severity: SeverityWarning,
			})
			continue
		}
		lines = append(lines, line)
	}

	return lines, issues
}

// splitGedcomLines is a bufio.SplitFunc handling LF, CRLF and CR-only
// terminators (old exports from classic Mac OS tools use bare CR).
func splitGedcomLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// Need one more byte to tell CR from CRLF.
				return 0, nil, nil
			}
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
