package version

import "testing"

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldBuild := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuild }()

	Version = "1.2.3"
	Commit = "0123456789abcdef"
	BuildTime = "2026-01-01"

	want := "1.2.3 (commit: 0123456, built: 2026-01-01)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	Commit = "abc"
	if got := shortCommit(); got != "abc" {
		t.Errorf("shortCommit() = %q, want %q", got, "abc")
	}
}
