package services

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The chatbot API accepts at most four question/answer pairs and requires three
const (
	minChatPrompts = 3
	maxChatPrompts = 4
)

//go:embed chatbot_script.yaml
var defaultChatbotScript []byte

// ChatTopic is one selectable topic with its prompts in order
type ChatTopic struct {
	Name    string   `yaml:"name"`
	Prompts []string `yaml:"prompts"`
}

// ChatbotScript is the scripted conversation shown by the chatbot widget
type ChatbotScript struct {
	Welcome    string      `yaml:"welcome"`
	Completion string      `yaml:"completion"`
	Failure    string      `yaml:"failure"`
	Topics     []ChatTopic `yaml:"topics"`
	Fallback   []string    `yaml:"fallback"`
}

// DefaultChatbotScript returns the embedded script
func DefaultChatbotScript() *ChatbotScript {
	script, err := ParseChatbotScript(defaultChatbotScript)
	if err != nil {
		panic(fmt.Sprintf("embedded chatbot script is invalid: %v", err))
	}
	return script
}

// LoadChatbotScript reads a script from path. An empty path yields the
// embedded default.
func LoadChatbotScript(path string) (*ChatbotScript, error) {
	if path == "" {
		return DefaultChatbotScript(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chatbot script: %w", err)
	}
	return ParseChatbotScript(raw)
}

// ParseChatbotScript decodes and validates a YAML script
func ParseChatbotScript(raw []byte) (*ChatbotScript, error) {
	var script ChatbotScript
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return nil, fmt.Errorf("failed to parse chatbot script: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *ChatbotScript) validate() error {
	if s.Welcome == "" || s.Completion == "" {
		return fmt.Errorf("chatbot script needs welcome and completion messages")
	}
	if len(s.Topics) == 0 {
		return fmt.Errorf("chatbot script has no topics")
	}
	seen := map[string]bool{}
	for _, t := range s.Topics {
		if t.Name == "" {
			return fmt.Errorf("chatbot topic without a name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate chatbot topic %q", t.Name)
		}
		seen[t.Name] = true
		if err := checkPromptCount(t.Name, t.Prompts); err != nil {
			return err
		}
	}
	return checkPromptCount("fallback", s.Fallback)
}

func checkPromptCount(name string, prompts []string) error {
	if len(prompts) < minChatPrompts || len(prompts) > maxChatPrompts {
		return fmt.Errorf("chatbot topic %q has %d prompts, want %d to %d", name, len(prompts), minChatPrompts, maxChatPrompts)
	}
	return nil
}

// TopicNames returns the selectable topics in display order
func (s *ChatbotScript) TopicNames() []string {
	names := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		names[i] = t.Name
	}
	return names
}

// Prompts returns the prompts of topic, or the fallback prompts when the
// topic is unknown
func (s *ChatbotScript) Prompts(topic string) []string {
	for _, t := range s.Topics {
		if t.Name == topic {
			return append([]string(nil), t.Prompts...)
		}
	}
	return append([]string(nil), s.Fallback...)
}
