package persistence

import "github.com/jackc/pgx/v5/pgtype"

type pgTimestamp = pgtype.Timestamptz

// nullableString maps "" to NULL so empty optional fields do not show up
// as empty strings in the store.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
