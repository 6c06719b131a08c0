package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getactive-kenya/backend/internal/model/chat"
)

func TestNewStoreStartsEmptyWithoutPersistedState(t *testing.T) {
	store := NewStore(t.TempDir())

	session := store.Session()
	if len(session.Messages) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(session.Messages))
	}
	if session.Language != chat.LanguageEnglish {
		t.Fatalf("expected default language en, got %s", session.Language)
	}
}

func TestOpenSeedsWelcomeMessageOnce(t *testing.T) {
	store := NewStore(t.TempDir())

	session := store.Open()
	if len(session.Messages) != 1 {
		t.Fatalf("expected one welcome message, got %d", len(session.Messages))
	}
	welcome := session.Messages[0]
	if welcome.Sender != chat.SenderBot {
		t.Fatalf("welcome must be bot-authored, got %s", welcome.Sender)
	}
	if welcome.Text != WelcomeText(chat.LanguageEnglish) {
		t.Fatalf("unexpected welcome text: %q", welcome.Text)
	}

	// A second open must not duplicate the seed.
	if again := store.Open(); len(again.Messages) != 1 {
		t.Fatalf("expected one message after reopening, got %d", len(again.Messages))
	}
}

func TestAppendPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	store.Append(chat.Message{ID: "m1", Text: "hello", Sender: chat.SenderUser, CreatedAt: time.Now().UTC()})
	store.SetLanguage(chat.LanguageSwahili)

	reloaded := NewStore(dir)
	session := reloaded.Session()
	if len(session.Messages) != 1 {
		t.Fatalf("expected transcript to survive a restart, got %d messages", len(session.Messages))
	}
	if session.Messages[0].Text != "hello" {
		t.Fatalf("unexpected persisted text: %q", session.Messages[0].Text)
	}
	if session.Language != chat.LanguageSwahili {
		t.Fatalf("expected persisted language sw, got %s", session.Language)
	}
}

func TestResetWhileOpenReseedsWelcome(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Open()
	for i := 0; i < 4; i++ {
		store.Append(chat.Message{ID: "m", Text: "x", Sender: chat.SenderUser})
	}
	if got := len(store.Messages()); got != 5 {
		t.Fatalf("setup expected 5 messages, got %d", got)
	}

	session := store.Reset()
	if len(session.Messages) != 1 {
		t.Fatalf("expected exactly one message after reset, got %d", len(session.Messages))
	}
	if session.Messages[0].Text != WelcomeText(chat.LanguageEnglish) {
		t.Fatalf("expected the welcome message, got %q", session.Messages[0].Text)
	}
}

func TestResetWhileClosedLeavesSessionEmpty(t *testing.T) {
	dir := t.TempDir()
	seeded := NewStore(dir)
	seeded.Append(chat.Message{ID: "m1", Text: "old", Sender: chat.SenderUser})

	store := NewStore(dir)
	session := store.Reset()
	if len(session.Messages) != 0 {
		t.Fatalf("reset on a closed widget must not seed a welcome, got %d messages", len(session.Messages))
	}
}

func TestSetLanguageDoesNotTouchTranscript(t *testing.T) {
	store := NewStore(t.TempDir())

	store.SetLanguage(chat.LanguageSwahili)

	session := store.Session()
	if len(session.Messages) != 0 {
		t.Fatalf("language toggle must not mutate the message list, got %d messages", len(session.Messages))
	}
	if session.Language != chat.LanguageSwahili {
		t.Fatalf("expected language sw, got %s", session.Language)
	}
}

func TestStorageFailureIsBestEffort(t *testing.T) {
	// Point the store at a path that cannot be a directory.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := writeFile(blocked); err != nil {
		t.Fatalf("setup: %v", err)
	}

	store := NewStore(filepath.Join(blocked, "nested"))
	store.Append(chat.Message{ID: "m1", Text: "kept in memory", Sender: chat.SenderUser})

	if got := len(store.Messages()); got != 1 {
		t.Fatalf("in-memory operation must continue on storage failure, got %d messages", got)
	}
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0o600)
}
