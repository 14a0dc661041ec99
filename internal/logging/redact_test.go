package logging

import "testing"

func TestShouldMask(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"password", true},
		{"confirm_password", true},
		{"ClientSecret", true},
		{"api_key", true},
		{"ssn", true},
		{"email", false},
		{"zip", false},
		{"author", false},
	}
	for _, tt := range tests {
		if got := ShouldMask(tt.name); got != tt.want {
			t.Errorf("ShouldMask(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "********"},
		{"1234", "********"},
		{"hunter22", "****er22"},
	}
	for _, tt := range tests {
		if got := MaskValue(tt.in); got != tt.want {
			t.Errorf("MaskValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name, value, want string
	}{
		{"password", "correct horse", "****orse"},
		{"note", "sk-live-abcdef", "****cdef"},
		{"email", "ada@example.com", "ada@example.com"},
	}
	for _, tt := range tests {
		if got := Redact(tt.name, tt.value); got != tt.want {
			t.Errorf("Redact(%q, %q) = %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}
}
