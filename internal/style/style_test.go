package style

import "testing"

func TestDetect_NoColorFlag(t *testing.T) {
	s := Detect(true)
	if s == nil {
		t.Fatal("Detect() returned nil")
	}
	if got := s.Success.Render("ok"); got != "ok" {
		t.Errorf("plain style should not decorate output, got %q", got)
	}
}

func TestDetect_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	s := Detect(false)
	if got := s.Error.Render("boom"); got != "boom" {
		t.Errorf("NO_COLOR should disable decoration, got %q", got)
	}
}

func TestPlainStylesCoverAllFields(t *testing.T) {
	s := PlainStyles()
	for name, st := range map[string]string{
		"Header":  s.Header.Render("x"),
		"Step":    s.Step.Render("x"),
		"Success": s.Success.Render("x"),
		"Warning": s.Warning.Render("x"),
		"Error":   s.Error.Render("x"),
		"Dim":     s.Dim.Render("x"),
	} {
		if st != "x" {
			t.Errorf("%s: plain render = %q, want %q", name, st, "x")
		}
	}
}
