package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"morningful_landing_go/config"
	"morningful_landing_go/models"
	"morningful_landing_go/services/guided"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	chatWelcomeDelay  = 500 * time.Millisecond
	chatTopicDelay    = time.Second
	chatFollowUpDelay = 500 * time.Millisecond
)

var (
	ErrChatClosed      = errors.New("chat is closed")
	ErrTopicRequired   = errors.New("a topic must be selected first")
	ErrTopicChosen     = errors.New("a topic was already selected")
	ErrChatDisposed    = errors.New("chat session disposed")
	errChatNotAccepted = errors.New("chatbot answers were not accepted")
)

// ChatMessage is one line of the chatbot transcript
type ChatMessage struct {
	ID    string
	Text  string
	IsBot bool
	Time  time.Time
}

// ChatView is a copy of the session state for rendering
type ChatView struct {
	Open     bool
	Typing   bool
	Topic    string
	Complete bool
	Messages []ChatMessage
	// Topics is set while the visitor still has to pick a topic
	Topics []string
	// AcceptsInput reports whether the message box should be enabled
	AcceptsInput bool
	// Waiting is set while a bot message is scheduled but not yet posted
	Waiting bool
}

// ChatSession runs the scripted chatbot for one visitor. Answers are
// collected by a guided.Sequence and mirrored into a guided.Controller whose
// fields are topic, questionN and answerN; the controller submits once when
// the last prompt is answered.
type ChatSession struct {
	mu          sync.Mutex
	script      *ChatbotScript
	flows       *Flows
	visitor     Visitor
	clock       guided.Clock
	typingDelay time.Duration

	open     bool
	disposed bool
	typing   int
	pending  int
	gen      uint64
	timers   []guided.Timer
	messages []ChatMessage

	seq      *guided.Sequence
	form     *guided.Controller
	asked    int
	complete bool
}

// NewChatSession creates a closed chat session
func (f *Flows) NewChatSession(script *ChatbotScript, visitor Visitor) *ChatSession {
	delay := config.DefaultTypingDelay
	if f.cfg != nil && f.cfg.TypingDelay > 0 {
		delay = f.cfg.TypingDelay
	}
	return &ChatSession{
		script:      script,
		flows:       f,
		visitor:     visitor,
		clock:       f.clock,
		typingDelay: delay,
	}
}

// Open shows the widget. The welcome message is posted on first open, and a
// prompt whose timer was cancelled by Close is asked again.
func (s *ChatSession) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrChatDisposed
	}
	if s.open {
		return nil
	}
	if s.form != nil && !s.complete {
		if err := s.form.Open(); err != nil {
			return err
		}
	}
	s.open = true

	switch {
	case len(s.messages) == 0:
		s.botSayLocked(chatWelcomeDelay, s.script.Welcome, nil)
	case s.seq != nil && !s.complete && s.asked <= s.seq.Cursor():
		s.askCurrentLocked(chatFollowUpDelay)
	}
	return nil
}

// Close hides the widget and cancels every pending bot message. The
// transcript and collected answers are kept.
func (s *ChatSession) Close() {
	s.mu.Lock()
	form := s.form
	s.closeLocked()
	s.mu.Unlock()

	if form != nil {
		form.Close()
	}
}

func (s *ChatSession) closeLocked() {
	if !s.open {
		return
	}
	s.open = false
	s.gen++
	s.typing = 0
	s.pending = 0
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// Dispose closes the session for good
func (s *ChatSession) Dispose() {
	s.mu.Lock()
	form := s.form
	s.closeLocked()
	s.disposed = true
	s.mu.Unlock()

	if form != nil {
		form.Dispose()
	}
}

// SelectTopic starts the question sequence for topic. Topics missing from
// the script get the fallback prompts.
func (s *ChatSession) SelectTopic(topic string) error {
	topic = strings.TrimSpace(topic)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpenLocked(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if s.seq != nil {
		return ErrTopicChosen
	}

	prompts := s.script.Prompts(topic)
	form := s.flows.newChatForm(topic, len(prompts), s.visitor)
	if err := form.Open(); err != nil {
		return err
	}
	if err := form.Edit(chatTopicField, topic); err != nil {
		return err
	}

	s.seq = guided.NewSequence(topic, prompts)
	s.form = form
	s.userSayLocked("I'd like to discuss: " + topic)
	s.askCurrentLocked(chatTopicDelay)
	return nil
}

// Message records the visitor's answer to the current prompt. Blank
// messages, messages sent before the prompt is posted and input after the
// conversation completed are ignored. When the
// last prompt is answered the collected answers are submitted, blocking
// until the submission finishes.
func (s *ChatSession) Message(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.seq == nil {
		s.mu.Unlock()
		return ErrTopicRequired
	}
	if text == "" || s.complete {
		s.mu.Unlock()
		return nil
	}
	// the current prompt has not been posted yet
	if s.asked <= s.seq.Cursor() {
		s.mu.Unlock()
		return nil
	}

	s.userSayLocked(text)
	answer, err := s.seq.Record(text)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	n := s.seq.Cursor()
	if err := s.form.Edit(chatQuestionField(n), answer.Question); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.form.Edit(chatAnswerField(n), answer.Answer); err != nil {
		s.mu.Unlock()
		return err
	}

	if !s.seq.Done() {
		s.askCurrentLocked(chatFollowUpDelay)
		s.mu.Unlock()
		return nil
	}

	s.complete = true
	form := s.form
	topic := s.seq.Topic()
	gen := s.gen
	s.mu.Unlock()

	state, err := form.Submit(ctx)
	if errors.Is(err, guided.ErrSuperseded) || errors.Is(err, guided.ErrClosed) || errors.Is(err, guided.ErrDisposed) {
		return nil
	}

	closing := s.script.Completion
	if err != nil || state != guided.StateSucceeded {
		if err == nil {
			err = errChatNotAccepted
		}
		log.Printf("[WARNING] Chatbot submission for topic %q failed: %v", topic, err)
		if s.script.Failure != "" {
			closing = s.script.Failure
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen && s.open {
		s.botSayLocked(chatFollowUpDelay, closing, nil)
	}
	return nil
}

// View returns a copy of the session for rendering
func (s *ChatSession) View() ChatView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := ChatView{
		Open:     s.open,
		Typing:   s.typing > 0,
		Waiting:  s.pending > 0,
		Complete: s.complete,
		Messages: append([]ChatMessage(nil), s.messages...),
	}
	if s.seq != nil {
		v.Topic = s.seq.Topic()
		v.AcceptsInput = !s.complete && v.Open && !v.Typing
	} else if len(s.messages) > 0 && !v.Typing {
		v.Topics = s.script.TopicNames()
	}
	return v
}

// Answers returns the question/answer pairs collected so far
func (s *ChatSession) Answers() []guided.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == nil {
		return nil
	}
	return s.seq.Answers()
}

func (s *ChatSession) checkOpenLocked() error {
	if s.disposed {
		return ErrChatDisposed
	}
	if !s.open {
		return ErrChatClosed
	}
	return nil
}

func (s *ChatSession) askCurrentLocked(after time.Duration) {
	prompt, ok := s.seq.Current()
	if !ok {
		return
	}
	index := s.seq.Cursor()
	s.botSayLocked(after, prompt, func() {
		if s.asked <= index {
			s.asked = index + 1
		}
	})
}

func (s *ChatSession) userSayLocked(text string) {
	s.messages = append(s.messages, ChatMessage{ID: uuid.New().String(), Text: text, Time: time.Now()})
}

// botSayLocked shows the typing indicator after the given delay and posts
// text once the typing delay has passed. Both steps are owned timers and are
// dropped if the session closes in between.
func (s *ChatSession) botSayLocked(after time.Duration, text string, posted func()) {
	s.pending++
	s.afterLocked(after, func() {
		s.typing++
		s.afterLocked(s.typingDelay, func() {
			s.typing--
			s.pending--
			s.messages = append(s.messages, ChatMessage{ID: uuid.New().String(), Text: text, IsBot: true, Time: time.Now()})
			if posted != nil {
				posted()
			}
		})
	})
}

func (s *ChatSession) afterLocked(d time.Duration, f func()) {
	gen := s.gen
	s.timers = append(s.timers, s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen || !s.open {
			return
		}
		f()
	}))
}

const chatTopicField = "topic"

func chatQuestionField(n int) string { return fmt.Sprintf("question%d", n) }

func chatAnswerField(n int) string { return fmt.Sprintf("answer%d", n) }

// newChatForm builds the controller behind a chat conversation. It has no
// auto-close: the widget stays on the completion message.
func (f *Flows) newChatForm(topic string, prompts int, visitor Visitor) *guided.Controller {
	fields := []string{chatTopicField}
	for i := 1; i <= prompts; i++ {
		fields = append(fields, chatQuestionField(i), chatAnswerField(i))
	}

	schema := guided.Schema{
		Name:   string(models.LeadChatbot),
		Fields: fields,
		Validate: func(values map[string]string) map[string]string {
			errs := map[string]string{}
			for _, field := range fields {
				if strings.TrimSpace(values[field]) == "" {
					errs[field] = "This field is required"
				}
			}
			return errs
		},
		Submit: f.timedSubmit(models.LeadChatbot, visitor, func(ctx context.Context, values map[string]string) guided.Result {
			return f.client.Submit(ctx, models.LeadChatbot, buildChatbotPayload(SanitizeValues(values)))
		}),
		OnSuccess: func(values map[string]string, result guided.Result) {
			f.analytics.TrackLeadSubmitted(visitor.SessionID, visitor.Country, models.LeadChatbot, values)
			f.notify(models.LeadChatbot, visitor, fields, SanitizeValues(values))
		},
		OnFailure: func(values map[string]string, result guided.Result) {
			f.trackFailure(visitor, models.LeadChatbot, result)
		},
	}
	return guided.New(schema, guided.WithClock(f.clock))
}

func buildChatbotPayload(v map[string]string) models.ChatbotRequest {
	req := models.ChatbotRequest{
		ChosenTopic: v[chatTopicField],
		Question1:   v[chatQuestionField(1)],
		Question2:   v[chatQuestionField(2)],
		Question3:   v[chatQuestionField(3)],
		Answer1:     v[chatAnswerField(1)],
		Answer2:     v[chatAnswerField(2)],
		Answer3:     v[chatAnswerField(3)],
	}
	if q := v[chatQuestionField(4)]; q != "" {
		req.Question4 = &q
	}
	if a := v[chatAnswerField(4)]; a != "" {
		req.Answer4 = &a
	}
	return req
}
