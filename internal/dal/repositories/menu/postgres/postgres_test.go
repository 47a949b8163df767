package postgresrepo

import (
	"strings"
	"testing"
)

func TestBuildGetQuery_Locks(t *testing.T) {
	r := NewPostgresMenuRepository(nil)

	tests := []struct {
		lock string
	}{
		{""},
		{"FOR SHARE"},
		{"FOR UPDATE"},
	}
	for _, tt := range tests {
		query, args, err := r.buildGetQuery(5, tt.lock)
		if err != nil {
			t.Fatalf("buildGetQuery(%q): %v", tt.lock, err)
		}
		if !strings.Contains(query, "FROM menu_items WHERE id = $1") {
			t.Errorf("buildGetQuery(%q) = %q", tt.lock, query)
		}
		if tt.lock != "" && !strings.HasSuffix(query, tt.lock) {
			t.Errorf("buildGetQuery(%q) = %q, want lock suffix", tt.lock, query)
		}
		if tt.lock == "" && strings.Contains(query, "FOR ") {
			t.Errorf("buildGetQuery(%q) = %q, want no lock", tt.lock, query)
		}
		if len(args) != 1 || args[0] != int64(5) {
			t.Errorf("args = %v, want [5]", args)
		}
	}
}
