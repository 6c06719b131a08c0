package feedback

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/getactive-kenya/backend/internal/model/feedback"
)

var (
	ErrMessageIDRequired = errors.New("messageId is required")
	ErrCommentRequired   = errors.New("a comment is required for unhelpful feedback")
	ErrAlreadyRated      = errors.New("message has already been rated")
)

// Recorder accepts one helpfulness rating per bot message and forwards it to
// an external collector as a detached task. Delivery is fire-and-forget: a
// failed send lands in the log as a dead letter and never reverses the
// rating.
type Recorder struct {
	collectorURL string
	client       *http.Client
	now          func() time.Time

	mu      sync.Mutex
	records map[string]feedback.Record
	wg      sync.WaitGroup
}

// NewRecorder builds a recorder. With an empty collector URL every record is
// only written to the log.
func NewRecorder(collectorURL string) *Recorder {
	return &Recorder{
		collectorURL: collectorURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		now:          time.Now,
		records:      make(map[string]feedback.Record),
	}
}

// Submit records a rating. The first submission for a message id wins; any
// later call returns the original record with ErrAlreadyRated.
func (r *Recorder) Submit(messageID string, isHelpful bool, comment string) (feedback.Record, error) {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return feedback.Record{}, ErrMessageIDRequired
	}
	if !isHelpful && strings.TrimSpace(comment) == "" {
		return feedback.Record{}, ErrCommentRequired
	}

	record := feedback.Record{
		MessageID: messageID,
		IsHelpful: isHelpful,
		Comment:   strings.TrimSpace(comment),
		Timestamp: r.now().UTC(),
	}

	r.mu.Lock()
	if existing, ok := r.records[messageID]; ok {
		r.mu.Unlock()
		return existing, ErrAlreadyRated
	}
	r.records[messageID] = record
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.dispatch(record)
	}()

	return record, nil
}

// Rated reports whether a message already carries feedback.
func (r *Recorder) Rated(messageID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[messageID]
	return ok
}

// Wait blocks until all in-flight dispatches have finished. Used on
// shutdown and in tests.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

func (r *Recorder) dispatch(record feedback.Record) {
	payload, err := json.Marshal(record)
	if err != nil {
		log.Printf("[feedback] failed to encode record for %s: %v", record.MessageID, err)
		return
	}

	if r.collectorURL == "" {
		log.Printf("[feedback] no collector configured, record: %s", payload)
		return
	}

	resp, err := r.client.Post(r.collectorURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[feedback] dead-letter (send failed): %s: %v", payload, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("[feedback] dead-letter (collector returned %d): %s", resp.StatusCode, payload)
		return
	}

	log.Printf("[feedback] recorded feedback for message=%s helpful=%t", record.MessageID, record.IsHelpful)
}
