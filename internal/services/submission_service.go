package services

import (
	"errors"
	"time"

	"github.com/anketa-io/anketa/internal/models"
)

// AppendStore abstracts the persistence operation required by SubmissionService.
type AppendStore interface {
	Append(rec *models.StoredSurveyRecord) error
}

// SubmissionRequest transports the sanitized handler input into the service
// layer: the decoded request payload plus request-context metadata.
type SubmissionRequest struct {
	Payload      any
	RemoteAddr   string
	ForwardedFor string
}

// SubmissionResult collects the data needed to emit the HTTP response.
type SubmissionResult struct {
	SubmissionID string
}

// SubmissionService hosts the core intake workflow: validate, anonymize,
// assign an id, assemble the record and append it. Each call operates only on
// its own data; the store is the only shared resource.
type SubmissionService struct {
	store AppendStore
	now   func() time.Time
}

// NewSubmissionService constructs a service bound to the provided store.
func NewSubmissionService(store AppendStore) *SubmissionService {
	return &SubmissionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Process runs one submission through the pipeline. It returns ErrInvalidBody
// for non-object payloads, a *ValidationError for field violations, and the
// store's error when the append fails — in which case no success result is
// produced.
func (s *SubmissionService) Process(req SubmissionRequest) (*SubmissionResult, error) {
	if s.store == nil {
		return nil, errors.New("submission service store is nil")
	}

	sub, err := ParseSubmission(req.Payload)
	if err != nil {
		return nil, err
	}

	anon := Anonymize(sub)
	receivedAt := s.now()
	id := AssignSubmissionID(sub, receivedAt)

	rec := buildRecord(sub, anon, id, receivedAt, req.RemoteAddr, req.ForwardedFor)
	if err := s.store.Append(rec); err != nil {
		return nil, err
	}

	return &SubmissionResult{SubmissionID: id}, nil
}

// buildRecord assembles the durable record from upstream outputs. It trusts
// its inputs; no validation is repeated here. The forwarded-for value wins
// over the direct connection address when present.
func buildRecord(sub *models.SurveySubmission, anon AnonymizedFields, id string, receivedAt time.Time, remoteAddr, forwardedFor string) *models.StoredSurveyRecord {
	ip := forwardedFor
	if ip == "" {
		ip = remoteAddr
	}
	return &models.StoredSurveyRecord{
		SubmissionID: id,
		Email:        anon.Email,
		Age:          anon.Age,
		Answers:      sub.Answers,
		ReceivedAt:   receivedAt.UTC(),
		IP:           ip,
	}
}
