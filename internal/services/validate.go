package services

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/anketa-io/anketa/internal/models"
)

// ErrInvalidBody is returned when the request payload is not a JSON object at
// all. It is detected before any field validation runs.
var ErrInvalidBody = errors.New("body must be a JSON object")

// ValidationError carries every field constraint a submission violated, so
// the caller can correct all of them in one round trip.
type ValidationError struct {
	Violations []models.FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(fields, ", "))
}

// MaxAge bounds the accepted age to a plausible human range.
const MaxAge = 130

// ParseSubmission turns an already-JSON-decoded payload into a typed
// submission. A non-object payload fails with ErrInvalidBody; field-level
// problems are collected and returned together as a *ValidationError.
func ParseSubmission(payload any) (*models.SurveySubmission, error) {
	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return nil, ErrInvalidBody
	}

	var violations []models.FieldViolation
	sub := &models.SurveySubmission{}

	if raw, present := obj["email"]; !present {
		violations = append(violations, models.FieldViolation{Field: "email", Reason: "missing", Message: "email is required"})
	} else if s, ok := raw.(string); !ok {
		violations = append(violations, models.FieldViolation{Field: "email", Reason: "wrong_type", Message: "email must be a string"})
	} else if _, err := mail.ParseAddress(s); err != nil {
		violations = append(violations, models.FieldViolation{Field: "email", Reason: "malformed", Message: "email is not a valid address"})
	} else {
		sub.Email = s
	}

	if raw, present := obj["age"]; present && raw != nil {
		if n, ok := raw.(float64); !ok {
			violations = append(violations, models.FieldViolation{Field: "age", Reason: "wrong_type", Message: "age must be a number"})
		} else if n != math.Trunc(n) {
			violations = append(violations, models.FieldViolation{Field: "age", Reason: "wrong_type", Message: "age must be an integer"})
		} else if n < 0 || n > MaxAge {
			violations = append(violations, models.FieldViolation{Field: "age", Reason: "out_of_range", Message: fmt.Sprintf("age must be between 0 and %d", MaxAge)})
		} else {
			age := int(n)
			sub.Age = &age
		}
	}

	if raw, present := obj["answers"]; present && raw != nil {
		if m, ok := raw.(map[string]any); !ok {
			violations = append(violations, models.FieldViolation{Field: "answers", Reason: "wrong_type", Message: "answers must be an object"})
		} else {
			sub.Answers = m
		}
	}

	if raw, present := obj["submission_id"]; present && raw != nil {
		if s, ok := raw.(string); !ok {
			violations = append(violations, models.FieldViolation{Field: "submission_id", Reason: "wrong_type", Message: "submission_id must be a string"})
		} else {
			sub.SubmissionID = s
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return sub, nil
}
