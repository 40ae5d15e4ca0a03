package db

import "testing"

func TestParseURL(t *testing.T) {
	cases := []struct {
		in      string
		dialect string
		dsn     string
	}{
		{"", DialectSQLite, "mindmate.db"},
		{"sqlite:///./mindmate.db", DialectSQLite, "./mindmate.db"},
		{"sqlite://data.db", DialectSQLite, "data.db"},
		{"file::memory:?cache=shared", DialectSQLite, "file::memory:?cache=shared"},
		{"postgres://u:p@localhost:5432/mindmate", DialectPostgres, "postgres://u:p@localhost:5432/mindmate"},
		{"postgresql://localhost/mindmate", DialectPostgres, "postgresql://localhost/mindmate"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			dialect, dsn := ParseURL(tc.in)
			if dialect != tc.dialect || dsn != tc.dsn {
				t.Fatalf("ParseURL(%q) = (%q, %q), want (%q, %q)", tc.in, dialect, dsn, tc.dialect, tc.dsn)
			}
		})
	}
}
