package pipeline

import (
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"term", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{RepoPath: "."}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	if opts.MaxCommits != DefaultMaxCommits {
		t.Errorf("MaxCommits should be %d, got %d", DefaultMaxCommits, opts.MaxCommits)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should default to [json], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	var opts Options
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("missing repository path should fail")
	}

	opts = Options{RepoPath: ".", MaxCommits: -1}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("negative max_commits should fail")
	}

	opts = Options{RepoPath: ".", Formats: []string{"png"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{RepoPath: ".", MaxCommits: 7, Formats: []string{"dot"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validation failed: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation failed: %v", err)
	}
	if opts.MaxCommits != 7 {
		t.Errorf("MaxCommits changed to %d", opts.MaxCommits)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "dot" {
		t.Errorf("Formats changed to %v", opts.Formats)
	}
}

func TestKeyOptsReflectOptions(t *testing.T) {
	opts := Options{Ref: "feature", All: true, MaxCommits: 10}

	lk := opts.LogKeyOpts()
	if lk.Ref != "feature" || !lk.All || lk.MaxCommits != 10 {
		t.Errorf("LogKeyOpts = %+v", lk)
	}
	ak := opts.ArtifactKeyOpts("svg")
	if ak.Format != "svg" {
		t.Errorf("ArtifactKeyOpts format = %q", ak.Format)
	}
}
