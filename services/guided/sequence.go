package guided

import "errors"

// ErrSequenceComplete is returned when recording past the last prompt
var ErrSequenceComplete = errors.New("all prompts answered")

// Answer is one prompt paired with the visitor's reply
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Sequence walks a fixed list of prompts for a topic. The number of recorded
// answers always equals the cursor, and the cursor never moves backwards.
type Sequence struct {
	topic   string
	prompts []string
	cursor  int
	answers []Answer
}

func NewSequence(topic string, prompts []string) *Sequence {
	return &Sequence{
		topic:   topic,
		prompts: append([]string(nil), prompts...),
		answers: make([]Answer, 0, len(prompts)),
	}
}

func (s *Sequence) Topic() string { return s.topic }

func (s *Sequence) Len() int { return len(s.prompts) }

func (s *Sequence) Cursor() int { return s.cursor }

// Done reports whether every prompt has been answered
func (s *Sequence) Done() bool {
	return s.cursor >= len(s.prompts)
}

// Current returns the prompt awaiting an answer
func (s *Sequence) Current() (string, bool) {
	if s.Done() {
		return "", false
	}
	return s.prompts[s.cursor], true
}

// Record stores the answer to the current prompt and advances the cursor
func (s *Sequence) Record(answer string) (Answer, error) {
	prompt, ok := s.Current()
	if !ok {
		return Answer{}, ErrSequenceComplete
	}
	a := Answer{Question: prompt, Answer: answer}
	s.answers = append(s.answers, a)
	s.cursor++
	return a, nil
}

// Answers returns a copy of the recorded pairs in order
func (s *Sequence) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}
