package version

import (
	"strings"
	"testing"
)

func TestStringContainsAllFields(t *testing.T) {
	s := String()
	if !strings.Contains(s, Version) {
		t.Errorf("version line %q missing version %q", s, Version)
	}
	if !strings.Contains(s, GitCommit) {
		t.Errorf("version line %q missing commit %q", s, GitCommit)
	}
	if !strings.Contains(s, BuildTime) {
		t.Errorf("version line %q missing build time %q", s, BuildTime)
	}
}
