package fields

import "testing"

func TestIndex(t *testing.T) {
	tests := []struct {
		name   string
		suffix Suffix
		want   string
	}{
		{"retries", Numeric, "idx.retries-n"},
		{"enabled", Boolean, "idx.enabled-b"},
		{"seen", Date, "idx.seen-d"},
		{"name", String, "idx.name-s"},
		{"session", Reference, "idx.session-r"},
		{"nested.key", String, "idx.nested.key-s"},
	}

	for _, tc := range tests {
		if got := Index(tc.name, tc.suffix); got != tc.want {
			t.Errorf("Index(%q, %q) = %q, want %q", tc.name, tc.suffix, got, tc.want)
		}
	}
}

func TestNamespaces(t *testing.T) {
	tests := []struct {
		field string
		data  bool
		ref   bool
	}{
		{"data.count", true, false},
		{"ref.parent", false, true},
		{"Data.count", false, false},
		{"data", false, false},
		{"metadata.count", false, false},
		{"idx.count-n", false, false},
	}

	for _, tc := range tests {
		if IsData(tc.field) != tc.data {
			t.Errorf("IsData(%q) = %v", tc.field, !tc.data)
		}
		if IsRef(tc.field) != tc.ref {
			t.Errorf("IsRef(%q) = %v", tc.field, !tc.ref)
		}
	}
}
