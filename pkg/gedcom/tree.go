package gedcom

// RawRecord is one node of the tag hierarchy: a tokenized line plus its
// nested sub-records. The nesting that GEDCOM encodes implicitly via level
// numbers is made explicit here so the projection into typed entities does
// not have to reason about depth at all.
type RawRecord struct {
	Level    int
	XRef     string
	Tag      string
	Value    string
	Line     int
	Children []*RawRecord
}

// Child returns the first direct sub-record with the given tag, or nil.
func (r *RawRecord) Child(tag string) *RawRecord {
	for _, c := range r.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildValue returns the value of the first direct sub-record with the given
// tag, or the empty string.
func (r *RawRecord) ChildValue(tag string) string {
	if c := r.Child(tag); c != nil {
		return c.Value
	}
	return ""
}

// buildTree projects the flat line list into a forest of record trees using
// a depth stack. A line whose level skips ahead of the current depth is
// attached to the deepest open record rather than rejected; level numbers
// are trusted only as far as they nest.
func buildTree(lines []*Line) []*RawRecord {
	var (
		roots []*RawRecord
		stack []*RawRecord
	)

	for _, line := range lines {
		rec := &RawRecord{
			Level: line.Level,
			XRef:  line.XRef,
			Tag:   line.Tag,
			Value: line.Value,
			Line:  line.LineNumber,
		}

		if line.Level == 0 {
			roots = append(roots, rec)
			stack = stack[:0]
			stack = append(stack, rec)
			continue
		}

		if len(stack) == 0 {
			// Sub-record before any root; treat as a root to stay tolerant.
			roots = append(roots, rec)
			stack = append(stack, rec)
			continue
		}

		// Pop to the nearest ancestor shallower than this line.
		for len(stack) > 1 && stack[len(stack)-1].Level >= line.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, rec)
		stack = append(stack, rec)
	}

	return roots
}
