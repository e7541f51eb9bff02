package services

import (
	"regexp"
	"testing"

	"github.com/anketa-io/anketa/internal/models"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestDigestDeterministic(t *testing.T) {
	a := Digest("a@example.com")
	b := Digest("a@example.com")
	if a != b {
		t.Fatalf("same input produced different digests: %s vs %s", a, b)
	}
	if !hexDigest.MatchString(a) {
		t.Fatalf("digest is not 64 hex chars: %q", a)
	}
}

func TestDigestDistinctInputs(t *testing.T) {
	if Digest("a@example.com") == Digest("b@example.com") {
		t.Fatal("distinct emails produced identical digests")
	}
}

func TestAnonymizeReplacesPII(t *testing.T) {
	age := 30
	sub := &models.SurveySubmission{Email: "user@test.com", Age: &age}
	anon := Anonymize(sub)
	if anon.Email == sub.Email || !hexDigest.MatchString(anon.Email) {
		t.Fatalf("email was not digested: %q", anon.Email)
	}
	if anon.Age == "30" || !hexDigest.MatchString(anon.Age) {
		t.Fatalf("age was not digested: %q", anon.Age)
	}
	if anon.Age != Digest("30") {
		t.Fatal("age digest should hash the decimal string form")
	}
}

func TestAnonymizeAbsentAgeStaysAbsent(t *testing.T) {
	anon := Anonymize(&models.SurveySubmission{Email: "user@test.com"})
	if anon.Age != "" {
		t.Fatalf("absent age was anonymized to %q", anon.Age)
	}
}
