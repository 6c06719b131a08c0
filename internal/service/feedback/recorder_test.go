package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/getactive-kenya/backend/internal/model/feedback"
)

func TestSubmitDeliversRecordToCollector(t *testing.T) {
	var received atomic.Int64
	var got feedback.Record
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		received.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer collector.Close()

	recorder := NewRecorder(collector.URL)
	record, err := recorder.Submit("msg-1", true, "")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	recorder.Wait()

	if received.Load() != 1 {
		t.Fatalf("expected one delivery, got %d", received.Load())
	}
	if got.MessageID != "msg-1" || !got.IsHelpful {
		t.Fatalf("unexpected delivered record: %+v", got)
	}
	if record.Timestamp.IsZero() {
		t.Fatal("record must carry a timestamp")
	}
}

func TestSubmitRequiresCommentForUnhelpful(t *testing.T) {
	recorder := NewRecorder("")

	if _, err := recorder.Submit("msg-1", false, "  "); !errors.Is(err, ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got %v", err)
	}
	if recorder.Rated("msg-1") {
		t.Fatal("a rejected submission must not rate the message")
	}
}

func TestSubmitIsOncePerMessage(t *testing.T) {
	recorder := NewRecorder("")

	first, err := recorder.Submit("msg-1", false, "too generic")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	second, err := recorder.Submit("msg-1", true, "")
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
	if second != first {
		t.Fatalf("resubmission must surface the original record: got %+v want %+v", second, first)
	}
	recorder.Wait()
}

func TestCollectorFailureDoesNotRevertState(t *testing.T) {
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer collector.Close()

	recorder := NewRecorder(collector.URL)
	if _, err := recorder.Submit("msg-1", true, ""); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	recorder.Wait()

	if !recorder.Rated("msg-1") {
		t.Fatal("delivery failure must not reverse the rating")
	}
}
