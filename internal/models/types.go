package models

import "time"

// SurveySubmission is the validated, request-scoped form of an inbound
// submission. PII fields (email, age) still hold their original values here;
// they are digested before anything is persisted.
type SurveySubmission struct {
	Email        string
	Age          *int // optional; nil means not supplied
	Answers      map[string]any
	SubmissionID string // optional caller-supplied id
}

// StoredSurveyRecord is the durable form of one submission. Email and Age
// carry sha256 hex digests, never the original values. Once appended it is
// never modified or removed.
type StoredSurveyRecord struct {
	SubmissionID string         `json:"submission_id"`
	Email        string         `json:"email"`
	Age          string         `json:"age,omitempty"`
	Answers      map[string]any `json:"answers,omitempty"`
	ReceivedAt   time.Time      `json:"received_at"`
	IP           string         `json:"ip"`
}

// FieldViolation describes one failed validation constraint. Reason is
// machine-readable: "missing", "wrong_type", "out_of_range" or "malformed".
type FieldViolation struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}
