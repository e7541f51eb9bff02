package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/anketa-io/anketa/internal/models"
)

// Digest returns the lowercase hex sha256 of the UTF-8 bytes of s.
// The digest is deliberately unsalted so that equal inputs stay joinable
// across records; this offers no protection against dictionary attacks on
// low-entropy inputs (a documented tradeoff, not one to fix here).
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// AnonymizedFields holds the digested PII of one submission. Age is empty
// when the submission carried no age.
type AnonymizedFields struct {
	Email string
	Age   string
}

// Anonymize digests the PII fields of a validated submission. Email is hashed
// verbatim; age is hashed as its decimal string form. Absent fields remain
// absent. Pure function, no side effects.
func Anonymize(sub *models.SurveySubmission) AnonymizedFields {
	out := AnonymizedFields{Email: Digest(sub.Email)}
	if sub.Age != nil {
		out.Age = Digest(strconv.Itoa(*sub.Age))
	}
	return out
}
