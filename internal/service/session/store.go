package session

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getactive-kenya/backend/internal/model/chat"
)

// Store owns the single widget conversation: the ordered transcript and the
// language preference, persisted across restarts. Persistence is best-effort;
// a storage failure is logged and the store keeps operating in memory.
type Store struct {
	mu       sync.RWMutex
	storage  *fileStorage
	messages []chat.Message
	language chat.Language
	open     bool
}

// NewStore loads any persisted session from dataDir. An absent or unreadable
// session simply starts empty.
func NewStore(dataDir string) *Store {
	s := &Store{
		storage:  newFileStorage(dataDir),
		language: chat.LanguageEnglish,
	}
	s.load()
	return s
}

func (s *Store) load() {
	if data, ok, err := s.storage.Get(messagesKey); err != nil {
		log.Printf("[session] failed to read transcript, starting empty: %v", err)
	} else if ok {
		var messages []chat.Message
		if err := json.Unmarshal(data, &messages); err != nil {
			log.Printf("[session] corrupt transcript, starting empty: %v", err)
		} else {
			s.messages = messages
		}
	}

	if data, ok, err := s.storage.Get(languageKey); err != nil {
		log.Printf("[session] failed to read language: %v", err)
	} else if ok {
		var code string
		if err := json.Unmarshal(data, &code); err == nil {
			if lang, err := chat.ParseLanguage(code); err == nil {
				s.language = lang
			}
		}
	}
}

// Session returns a copy of the current session.
func (s *Store) Session() chat.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return chat.Session{Messages: s.copyMessages(), Language: s.language}
}

// Messages returns a copy of the transcript.
func (s *Store) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyMessages()
}

// Language returns the current language preference.
func (s *Store) Language() chat.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Open marks the widget visible. The first open of an empty session seeds
// the localized welcome message, so an opened session is never empty.
func (s *Store) Open() chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = true
	if len(s.messages) == 0 {
		s.messages = append(s.messages, newWelcomeMessage(s.language))
		s.persistMessages()
	}
	return chat.Session{Messages: s.copyMessages(), Language: s.language}
}

// Append adds a message to the end of the transcript and persists it.
func (s *Store) Append(message chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)
	s.persistMessages()
}

// Reset clears the transcript and its persisted copy. When the widget is
// open the session is immediately re-seeded with a welcome message in the
// current language.
func (s *Store) Reset() chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	if err := s.storage.Remove(messagesKey); err != nil {
		log.Printf("[session] failed to clear transcript: %v", err)
	}

	if s.open {
		s.messages = append(s.messages, newWelcomeMessage(s.language))
		s.persistMessages()
	}
	return chat.Session{Messages: s.copyMessages(), Language: s.language}
}

// SetLanguage updates the language preference. Already-stored message text
// is left untouched.
func (s *Store) SetLanguage(lang chat.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.language = lang
	data, err := json.Marshal(string(lang))
	if err != nil {
		log.Printf("[session] failed to encode language: %v", err)
		return
	}
	if err := s.storage.Set(languageKey, data); err != nil {
		log.Printf("[session] failed to persist language: %v", err)
	}
}

// persistMessages writes the transcript; callers must hold the lock.
func (s *Store) persistMessages() {
	data, err := json.Marshal(s.messages)
	if err != nil {
		log.Printf("[session] failed to encode transcript: %v", err)
		return
	}
	if err := s.storage.Set(messagesKey, data); err != nil {
		log.Printf("[session] failed to persist transcript: %v", err)
	}
}

func (s *Store) copyMessages() []chat.Message {
	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

func newWelcomeMessage(lang chat.Language) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Text:      WelcomeText(lang),
		Sender:    chat.SenderBot,
		CreatedAt: time.Now().UTC(),
	}
}
