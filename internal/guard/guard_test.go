package guard

import (
	"errors"
	"testing"
)

func TestDecide_Matrix(t *testing.T) {
	tests := []struct {
		name          string
		class         Class
		authenticated bool
		want          Decision
	}{
		{"anonymous public", Public, false, Allow},
		{"anonymous protected", Protected, false, RedirectLogin},
		{"signed-in public", Public, true, RedirectHome},
		{"signed-in protected", Protected, true, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.class, tt.authenticated); got != tt.want {
				t.Errorf("Decide(%s, %v) = %s, want %s", tt.class, tt.authenticated, got, tt.want)
			}
		})
	}
}

func TestPolicy_Classify(t *testing.T) {
	p, err := NewPolicy("/login", "/forgot-password", "/docs/**")
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	tests := []struct {
		path string
		want Class
	}{
		{"/login", Public},
		{"/login/", Public},
		{"/forgot-password", Public},
		{"/docs/a/b", Public},
		{"/admin-dashboard", Protected},
		{"/admin-dashboard/job-posting", Protected},
		{"/login-as-someone", Protected},
		{"/never-listed", Protected},
	}

	for _, tt := range tests {
		got, err := p.Classify(tt.path)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestPolicy_ClassifyInvalidPath(t *testing.T) {
	p, err := NewPolicy("/login")
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	for _, in := range []string{"", "login"} {
		if _, err := p.Classify(in); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Classify(%q): expected ErrInvalidPath, got %v", in, err)
		}
	}

	var nilPolicy *Policy
	if _, err := nilPolicy.Classify("/login"); err == nil {
		t.Errorf("nil policy must fail")
	}
}

func TestNewMatcher_BadPattern(t *testing.T) {
	if _, err := NewMatcher("/admin/[unterminated"); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestMatcher_SingleStarStaysInSegment(t *testing.T) {
	m, err := NewMatcher("/admin-dashboard/*")
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	if !m.Match("/admin-dashboard/all-contacts") {
		t.Errorf("expected single segment match")
	}
	if m.Match("/admin-dashboard/a/b") {
		t.Errorf("single star must not cross segments")
	}
}
