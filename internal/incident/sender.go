// Package incident implements the minor subsystem that forwards
// triggered events to an external incident tracker. It is a thin,
// best-effort HTTP client: the core poller never blocks on it and never
// treats its failures as cycle failures.
package incident

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Result is the tracker's acknowledgement of a send.
type Result struct {
	Accepted bool   `json:"accepted"`
	ID       string `json:"id,omitempty"`
}

// Event mirrors the subset of a normalized event row the tracker needs.
type Event struct {
	SourceID int    `json:"source_id"`
	EventID  uint64 `json:"event_id"`
	Clock    int32  `json:"clock"`
	Value    int32  `json:"value"`
}

// Incident identifies a tracked issue a comment is being appended to.
type Incident struct {
	ID string `json:"id"`
}

// Sender posts events and incident comments to the tracker's HTTP API.
// It carries no retry logic of its own, matching the core's treatment
// of it as an out-of-scope external collaborator.
type Sender struct {
	baseURL    string
	httpClient *http.Client
}

// NewSender returns a Sender bound to baseURL.
func NewSender(baseURL string) *Sender {
	return &Sender{baseURL: baseURL, httpClient: &http.Client{}}
}

// Send reports a triggered event to the tracker.
func (s *Sender) Send(event Event) (Result, error) {
	return s.post("/events", event)
}

// SendComment appends a comment to an already-tracked incident.
func (s *Sender) SendComment(inc Incident, comment string) (Result, error) {
	return s.post(fmt.Sprintf("/incidents/%s/comments", inc.ID), map[string]string{"comment": comment})
}

func (s *Sender) post(path string, payload any) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("incident: encode payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("incident: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("incident: tracker returned %d: %s", resp.StatusCode, string(b))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("incident: decode response: %w", err)
	}
	return result, nil
}
