package jira

import (
	"errors"
	"time"

	"github.com/yahsan2/jira-csv/pkg/logging"
)

// Creator is the create-one-issue capability the submitter wraps. *Client
// satisfies it; tests substitute their own.
type Creator interface {
	Create(fields IssueFields) (*CreatedIssue, error)
}

// Submitter performs one logical create with bounded retry and exponential
// backoff layered on top. Authentication and client rejections short-circuit;
// rate limits, server errors and network failures are retried until the
// attempt budget runs out.
type Submitter struct {
	creator   Creator
	attempts  int
	baseDelay time.Duration

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewSubmitter creates a submitter with the given attempt budget (minimum 1)
// and base backoff delay.
func NewSubmitter(creator Creator, attempts int, baseDelay time.Duration) *Submitter {
	if attempts < 1 {
		attempts = 1
	}
	if baseDelay < 0 {
		baseDelay = 0
	}
	return &Submitter{
		creator:   creator,
		attempts:  attempts,
		baseDelay: baseDelay,
		sleep:     time.Sleep,
	}
}

// Submit attempts the create until it succeeds, fails non-retryably, or the
// attempt budget is exhausted. Terminal failures come back as a
// *SubmissionError wrapping the last observed cause; its classification is
// the only way to tell exhaustion apart from outright rejection.
func (s *Submitter) Submit(fields IssueFields) (*CreatedIssue, error) {
	var lastErr error

	for attempt := 0; attempt < s.attempts; attempt++ {
		logging.Debugf("submitting %q (attempt %d/%d)", fields.Summary, attempt+1, s.attempts)

		created, err := s.creator.Create(fields)
		if err == nil {
			logging.Infof("created issue %s: %s", created.Key, fields.Summary)
			return created, nil
		}
		lastErr = err
		logging.Warnf("attempt %d/%d failed for %q: %v", attempt+1, s.attempts, fields.Summary, err)

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			logging.Errorf("%s error, not retrying: %v", apiErr.Type, err)
			return nil, &SubmissionError{Attempts: attempt + 1, Cause: err}
		}

		if attempt < s.attempts-1 {
			wait := s.baseDelay * time.Duration(1<<attempt)
			logging.Infof("waiting %s before retry", wait)
			s.sleep(wait)
		}
	}

	logging.Errorf("all %d attempts failed for %q", s.attempts, fields.Summary)
	return nil, &SubmissionError{Attempts: s.attempts, Cause: lastErr}
}
