package services

import (
	"time"

	"github.com/anketa-io/anketa/internal/models"
)

// hourBucket is the layout for the UTC hour bucket used in derived ids.
const hourBucket = "2006010215"

// AssignSubmissionID returns the caller-supplied id unchanged when present.
// Otherwise it derives one from the original (pre-anonymization) email plus
// the current UTC hour bucket, digested like any other PII field. Repeat
// submissions from the same email within the same UTC hour therefore share an
// id — a coarse dedup signal, not a uniqueness guarantee; the store accepts
// colliding ids as-is.
func AssignSubmissionID(sub *models.SurveySubmission, now time.Time) string {
	if sub.SubmissionID != "" {
		return sub.SubmissionID
	}
	return Digest(sub.Email + now.UTC().Format(hourBucket))
}
