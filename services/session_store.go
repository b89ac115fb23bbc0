package services

import (
	"log"
	"morningful_landing_go/models"
	"morningful_landing_go/services/guided"
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle visitor keeps its forms and chat
const DefaultSessionTTL = 30 * time.Minute

// VisitorState holds the controllers owned by one visitor's page session.
// Controllers are created lazily on first use.
type VisitorState struct {
	mu       sync.Mutex
	visitor  Visitor
	flows    *Flows
	script   *ChatbotScript
	forms    map[models.LeadType]*guided.Controller
	chat     *ChatSession
	lastSeen time.Time
}

// Visitor returns the identity the controllers were created for
func (v *VisitorState) Visitor() Visitor {
	return v.visitor
}

// Form returns the controller of a modal flow, creating it closed if needed
func (v *VisitorState) Form(leadType models.LeadType) (*guided.Controller, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if c, ok := v.forms[leadType]; ok {
		return c, nil
	}
	c, err := v.flows.NewForm(leadType, v.visitor)
	if err != nil {
		return nil, err
	}
	v.forms[leadType] = c
	return c, nil
}

// Chat returns the visitor's chat session, creating it closed if needed
func (v *VisitorState) Chat() *ChatSession {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.chat == nil {
		v.chat = v.flows.NewChatSession(v.script, v.visitor)
	}
	return v.chat
}

func (v *VisitorState) dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.forms {
		c.Dispose()
	}
	if v.chat != nil {
		v.chat.Dispose()
	}
}

// SessionStore keeps visitor state in memory keyed by session ID and evicts
// sessions idle for longer than the TTL, disposing their controllers.
type SessionStore struct {
	mu       sync.Mutex
	flows    *Flows
	script   *ChatbotScript
	ttl      time.Duration
	sessions map[string]*VisitorState
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionStore(flows *Flows, script *ChatbotScript, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if script == nil {
		script = DefaultChatbotScript()
	}
	return &SessionStore{
		flows:    flows,
		script:   script,
		ttl:      ttl,
		sessions: make(map[string]*VisitorState),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Script returns the chatbot script shared by every session
func (s *SessionStore) Script() *ChatbotScript {
	return s.script
}

// Get returns the state of a session, creating it on first use. Every call
// counts as activity.
func (s *SessionStore) Get(sessionID, country string) *VisitorState {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.sessions[sessionID]
	if !ok {
		v = &VisitorState{
			visitor: Visitor{SessionID: sessionID, Country: country},
			flows:   s.flows,
			script:  s.script,
			forms:   make(map[models.LeadType]*guided.Controller),
		}
		s.sessions[sessionID] = v
	}
	v.lastSeen = s.now()
	return v
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts idle sessions and returns how many were removed
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*VisitorState
	for id, v := range s.sessions {
		if v.lastSeen.Before(cutoff) {
			expired = append(expired, v)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, v := range expired {
		v.dispose()
	}
	return len(expired)
}

// StartCleanup sweeps on every interval until Stop is called
func (s *SessionStore) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					log.Printf("[INFO] Evicted %d idle visitor sessions", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup loop and disposes every session
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)

		s.mu.Lock()
		sessions := s.sessions
		s.sessions = make(map[string]*VisitorState)
		s.mu.Unlock()

		for _, v := range sessions {
			v.dispose()
		}
	})
}
