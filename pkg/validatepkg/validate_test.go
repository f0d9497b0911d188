package validatepkg

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestEmail(t *testing.T) {
	testCases := []struct {
		email string
		want  bool
	}{
		{"john@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"a_b%c-d@x-y.io", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"john@.c", false},
		{"john@example.c", false},
		{"john@example.c0m", false},
		{"jo hn@example.com", false},
		{"<john>@example.com", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := Email(tc.email); got != tc.want {
			t.Errorf("Email(%q)=%v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestName(t *testing.T) {
	testCases := []struct {
		name string
		want bool
	}{
		{"Al", true},
		{"John Doe", true},
		{"  Jo  ", true},
		{"Çe", true},
		{"A", false},
		{"  A  ", false},
		{"", false},
		{"    ", false},
	}

	for _, tc := range testCases {
		if got := Name(tc.name); got != tc.want {
			t.Errorf("Name(%q)=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMaxLen(t *testing.T) {
	if !MaxLen(strings.Repeat("a", MaxPhoneLen), MaxPhoneLen) {
		t.Errorf("MaxLen of %d chars rejected", MaxPhoneLen)
	}

	if MaxLen(strings.Repeat("a", MaxPhoneLen+1), MaxPhoneLen) {
		t.Errorf("MaxLen of %d chars accepted", MaxPhoneLen+1)
	}
}

func TestSanitize(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"John Doe", "John Doe"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"a & b", "a & b"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizePtr(t *testing.T) {
	if got := SanitizePtr(nil); got != nil {
		t.Errorf("SanitizePtr(nil)=%v, want nil", *got)
	}

	in := "<b>555</b>"

	got := SanitizePtr(&in)
	if got == nil || *got != "&lt;b&gt;555&lt;/b&gt;" {
		t.Errorf("SanitizePtr(%q)=%v, want %q", in, got, "&lt;b&gt;555&lt;/b&gt;")
	}

	if in != "<b>555</b>" {
		t.Errorf("SanitizePtr modified its input: %q", in)
	}
}

func TestValidatorFuncs(t *testing.T) {
	v := validator.New()

	if err := v.RegisterValidation("accountemail", ValidEmail); err != nil {
		t.Fatalf("RegisterValidation(accountemail) returned error: %v", err)
	}

	if err := v.RegisterValidation("accountname", ValidName); err != nil {
		t.Fatalf("RegisterValidation(accountname) returned error: %v", err)
	}

	if err := v.Var("john@example.com", "accountemail"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}

	if err := v.Var("john", "accountemail"); err == nil {
		t.Errorf("invalid email accepted")
	}

	if err := v.Var("Jo", "accountname"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}

	if err := v.Var(" J ", "accountname"); err == nil {
		t.Errorf("short name accepted")
	}
}
