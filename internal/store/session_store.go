// Package store keeps the per-session state of every view in process memory.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"agroai-api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownTab      = errors.New("unknown tab")
	ErrBusy            = errors.New("a request for this view is already in progress")
	ErrNoImage         = errors.New("no image uploaded")
	ErrEmptyMessage    = errors.New("message is empty")
)

// Session is the state shared by the views of one client
type Session struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	ActiveTab models.Tab `json:"activeTab"`

	Form                  models.RecommendationRequest `json:"form"`
	Recommendations       []models.CropRecommendation  `json:"recommendations"`
	RecommendationLoading bool                         `json:"recommendationLoading"`
	RecommendationError   string                       `json:"recommendationError,omitempty"`

	Image          string                `json:"image,omitempty"` // data URL
	DiseaseResult  *models.DiseaseResult `json:"diseaseResult,omitempty"`
	DiseaseError   string                `json:"diseaseError,omitempty"`
	DiseaseLoading bool                  `json:"diseaseLoading"`

	Messages    []models.ChatMessage `json:"messages"`
	ChatLoading bool                 `json:"chatLoading"`
}

func (s *Session) clone() *Session {
	c := *s
	c.Recommendations = append([]models.CropRecommendation{}, s.Recommendations...)
	c.Messages = append([]models.ChatMessage{}, s.Messages...)
	if s.DiseaseResult != nil {
		r := *s.DiseaseResult
		c.DiseaseResult = &r
	}
	return &c
}

// SessionStore holds every session behind a single mutex.
// Callers never hold the lock across an assistant call: Begin* marks the view
// loading and Complete*/Fail* clears it.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionStore(logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
		logger:   logger.Named("store"),
	}
}

// Create starts a session on the crop recommendation view with the default
// form and a transcript opened by the assistant greeting.
func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	s := &Session{
		ID:              uuid.NewString(),
		CreatedAt:       now,
		ActiveTab:       models.TabCropRecommendation,
		Form:            models.DefaultRecommendationRequest(),
		Recommendations: []models.CropRecommendation{},
		Messages: []models.ChatMessage{
			{Role: models.RoleModel, Text: models.ChatGreeting, Timestamp: now},
		},
	}
	st.sessions[s.ID] = s
	st.logger.Info("Session created", zap.String("session_id", s.ID))
	return s.clone()
}

// Get returns a copy of the session that the caller may keep
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}

// Len returns the number of live sessions
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) lookup(id string) (*Session, error) {
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// update runs fn on the live session under the lock and returns a snapshot
func (st *SessionStore) update(id string, fn func(s *Session) error) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s.clone(), nil
}

func (st *SessionStore) SetActiveTab(id string, tab models.Tab) (*Session, error) {
	if !tab.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	return st.update(id, func(s *Session) error {
		s.ActiveTab = tab
		return nil
	})
}

// BeginRecommendation records the submitted form and marks the view loading
func (st *SessionStore) BeginRecommendation(id string, req models.RecommendationRequest) (*Session, error) {
	return st.update(id, func(s *Session) error {
		if s.RecommendationLoading {
			return ErrBusy
		}
		s.Form = req
		s.RecommendationLoading = true
		s.RecommendationError = ""
		return nil
	})
}

// CompleteRecommendation replaces the results and hands them to the analytics view
func (st *SessionStore) CompleteRecommendation(id string, recs []models.CropRecommendation) (*Session, error) {
	return st.update(id, func(s *Session) error {
		s.Recommendations = append([]models.CropRecommendation{}, recs...)
		s.RecommendationLoading = false
		s.ActiveTab = models.TabAnalytics
		return nil
	})
}

// FailRecommendation clears the loading flag. Previous results are kept.
func (st *SessionStore) FailRecommendation(id, message string) (*Session, error) {
	return st.update(id, func(s *Session) error {
		s.RecommendationLoading = false
		s.RecommendationError = message
		return nil
	})
}

// SetImage stores a new photo and discards the previous diagnosis.
// The photo cannot be replaced while it is being analyzed.
func (st *SessionStore) SetImage(id, dataURL string) (*Session, error) {
	return st.update(id, func(s *Session) error {
		if s.DiseaseLoading {
			return ErrBusy
		}
		s.Image = dataURL
		s.DiseaseResult = nil
		s.DiseaseError = ""
		return nil
	})
}

// BeginDiseaseAnalysis marks the view loading and returns the base64 payload of the stored image
func (st *SessionStore) BeginDiseaseAnalysis(id string) (string, error) {
	var payload string
	_, err := st.update(id, func(s *Session) error {
		if s.Image == "" {
			return ErrNoImage
		}
		if s.DiseaseLoading {
			return ErrBusy
		}
		payload = Base64Payload(s.Image)
		s.DiseaseLoading = true
		s.DiseaseError = ""
		return nil
	})
	return payload, err
}

func (st *SessionStore) CompleteDiseaseAnalysis(id string, result models.DiseaseResult) (*Session, error) {
	return st.update(id, func(s *Session) error {
		s.DiseaseResult = &result
		s.DiseaseLoading = false
		return nil
	})
}

func (st *SessionStore) FailDiseaseAnalysis(id, message string) (*Session, error) {
	return st.update(id, func(s *Session) error {
		s.DiseaseError = message
		s.DiseaseLoading = false
		return nil
	})
}

// BeginChat appends the user message and returns the transcript as it was before it
func (st *SessionStore) BeginChat(id, text string) ([]models.ChatTurn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	var history []models.ChatTurn
	_, err := st.update(id, func(s *Session) error {
		if s.ChatLoading {
			return ErrBusy
		}
		history = models.Turns(s.Messages)
		s.Messages = append(s.Messages, models.ChatMessage{Role: models.RoleUser, Text: text, Timestamp: st.now()})
		s.ChatLoading = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (st *SessionStore) CompleteChat(id, reply string) (*Session, error) {
	return st.appendModelMessage(id, reply)
}

// FailChat appends the apology as a model message
func (st *SessionStore) FailChat(id, apology string) (*Session, error) {
	return st.appendModelMessage(id, apology)
}

func (st *SessionStore) appendModelMessage(id, text string) (*Session, error) {
	return st.update(id, func(s *Session) error {
		s.Messages = append(s.Messages, models.ChatMessage{Role: models.RoleModel, Text: text, Timestamp: st.now()})
		s.ChatLoading = false
		return nil
	})
}

// Base64Payload returns the part of a data URL after the first comma.
// Input without a comma is returned unchanged.
func Base64Payload(dataURL string) string {
	if i := strings.IndexByte(dataURL, ','); i >= 0 {
		return dataURL[i+1:]
	}
	return dataURL
}
