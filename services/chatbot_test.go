package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatAPI struct {
	server *httptest.Server
	mu     sync.Mutex
	bodies []map[string]any
	status int
}

func newChatAPI(t *testing.T, status int) *chatAPI {
	t.Helper()
	api := &chatAPI{status: status}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/BusinessContact/chatbot-request", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		api.mu.Lock()
		api.bodies = append(api.bodies, body)
		api.mu.Unlock()
		w.WriteHeader(api.status)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (a *chatAPI) calls() []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]map[string]any(nil), a.bodies...)
}

func texts(v ChatView) []string {
	var out []string
	for _, m := range v.Messages {
		out = append(out, m.Text)
	}
	return out
}

// openChat opens a session and lets the welcome message arrive
func openChat(t *testing.T, h *flowHarness) *ChatSession {
	t.Helper()
	chat := h.flows.NewChatSession(DefaultChatbotScript(), Visitor{SessionID: "sess-chat", Country: "US"})
	require.NoError(t, chat.Open())
	h.clock.Advance(1500 * time.Millisecond)
	return chat
}

func TestChatWelcomeTiming(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	chat := h.flows.NewChatSession(DefaultChatbotScript(), Visitor{})
	require.NoError(t, chat.Open())

	h.clock.Advance(499 * time.Millisecond)
	v := chat.View()
	assert.Empty(t, v.Messages)
	assert.False(t, v.Typing)

	h.clock.Advance(time.Millisecond)
	assert.True(t, chat.View().Typing)

	h.clock.Advance(time.Second)
	v = chat.View()
	assert.False(t, v.Typing)
	require.Len(t, v.Messages, 1)
	assert.True(t, v.Messages[0].IsBot)
	assert.NotEmpty(t, v.Messages[0].ID)
	assert.Len(t, v.Topics, 5)
	assert.False(t, v.AcceptsInput)
}

func TestChatTechnicalSupportSubmitsOnce(t *testing.T) {
	api := newChatAPI(t, http.StatusOK)
	h := newFlowHarness(t, api.server.URL, time.Second)
	chat := openChat(t, h)

	require.NoError(t, chat.SelectTopic("Technical support"))
	h.clock.Advance(2 * time.Second)
	assert.Equal(t, "What technical issue are you experiencing?", texts(chat.View())[2])
	assert.True(t, chat.View().AcceptsInput)

	answers := []string{"The dashboard is blank", "Restarted the browser", "jane@acme.io"}
	for _, a := range answers {
		require.NoError(t, chat.Message(context.Background(), a))
		h.clock.Advance(1500 * time.Millisecond)
	}

	calls := api.calls()
	require.Len(t, calls, 1)
	body := calls[0]
	assert.Equal(t, "Technical support", body["ChosenTopic"])
	assert.Equal(t, "What technical issue are you experiencing?", body["Question1"])
	assert.Equal(t, "The dashboard is blank", body["Answer1"])
	assert.Equal(t, "jane@acme.io", body["Answer3"])
	assert.Nil(t, body["Question4"])
	assert.Nil(t, body["Answer4"])

	got := chat.Answers()
	require.Len(t, got, 3)
	assert.Equal(t, "Restarted the browser", got[1].Answer)

	v := chat.View()
	assert.True(t, v.Complete)
	assert.False(t, v.AcceptsInput)
	assert.Len(t, v.Messages, 9)
	assert.Equal(t, DefaultChatbotScript().Completion, v.Messages[8].Text)

	// input after completion changes nothing
	require.NoError(t, chat.Message(context.Background(), "one more thing"))
	h.clock.Advance(5 * time.Second)
	assert.Len(t, api.calls(), 1)
	assert.Len(t, chat.View().Messages, 9)
	assert.Contains(t, h.eventNames(), "chatbot_request_submitted")
}

func TestChatFourPromptTopicSendsFourthPair(t *testing.T) {
	api := newChatAPI(t, http.StatusOK)
	h := newFlowHarness(t, api.server.URL, time.Second)
	chat := openChat(t, h)

	require.NoError(t, chat.SelectTopic("Demo request"))
	h.clock.Advance(2 * time.Second)
	for _, a := range []string{"Forecasting", "Spreadsheets", "Next Tuesday", "jane@acme.io"} {
		require.NoError(t, chat.Message(context.Background(), a))
		h.clock.Advance(1500 * time.Millisecond)
	}

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Please provide your email address so we can schedule your demo.", calls[0]["Question4"])
	assert.Equal(t, "jane@acme.io", calls[0]["Answer4"])
}

func TestChatSubmissionFailureShowsFailureMessage(t *testing.T) {
	api := newChatAPI(t, http.StatusInternalServerError)
	h := newFlowHarness(t, api.server.URL, time.Second)
	chat := openChat(t, h)

	require.NoError(t, chat.SelectTopic("Feedback"))
	h.clock.Advance(2 * time.Second)
	for _, a := range []string{"Love it", "More exports", "jane@acme.io"} {
		require.NoError(t, chat.Message(context.Background(), a))
		h.clock.Advance(1500 * time.Millisecond)
	}

	assert.Len(t, api.calls(), 1)
	v := chat.View()
	assert.True(t, v.Complete)
	assert.Equal(t, DefaultChatbotScript().Failure, v.Messages[len(v.Messages)-1].Text)
	assert.Contains(t, h.eventNames(), "chatbot_request_failed")
}

func TestChatBlankAndEarlyMessages(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	chat := openChat(t, h)

	assert.ErrorIs(t, chat.Message(context.Background(), "hello"), ErrTopicRequired)
	assert.ErrorIs(t, chat.SelectTopic("  "), ErrTopicRequired)

	require.NoError(t, chat.SelectTopic("Pricing questions"))
	assert.ErrorIs(t, chat.SelectTopic("Feedback"), ErrTopicChosen)
	h.clock.Advance(2 * time.Second)

	before := len(chat.View().Messages)
	require.NoError(t, chat.Message(context.Background(), "   "))
	assert.Len(t, chat.View().Messages, before)
	assert.Empty(t, chat.Answers())

	// unknown topics fall back to the generic prompts
	assert.Equal(t, "Please provide more details about how we can help you.", texts(chat.View())[before-1])
}

func TestChatIgnoresAnswersBeforePromptIsPosted(t *testing.T) {
	api := newChatAPI(t, http.StatusOK)
	h := newFlowHarness(t, api.server.URL, time.Second)
	chat := openChat(t, h)

	require.NoError(t, chat.SelectTopic("Technical support"))
	for _, a := range []string{"a", "b", "c"} {
		require.NoError(t, chat.Message(context.Background(), a))
	}
	assert.Empty(t, chat.Answers())
	assert.Empty(t, api.calls())
	assert.NotContains(t, texts(chat.View()), "a")

	// once the prompt is shown the same answer is taken
	h.clock.Advance(2 * time.Second)
	require.NoError(t, chat.Message(context.Background(), "a"))
	require.Len(t, chat.Answers(), 1)
	assert.Equal(t, "What technical issue are you experiencing?", chat.Answers()[0].Question)

	// and the follow-up is gated the same way
	require.NoError(t, chat.Message(context.Background(), "b"))
	assert.Len(t, chat.Answers(), 1)
	assert.Empty(t, api.calls())
}

func TestChatCloseCancelsPendingMessages(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	chat := h.flows.NewChatSession(DefaultChatbotScript(), Visitor{})
	require.NoError(t, chat.Open())

	h.clock.Advance(600 * time.Millisecond)
	assert.True(t, chat.View().Typing)

	chat.Close()
	assert.Zero(t, h.clock.Pending())
	h.clock.Advance(5 * time.Second)

	v := chat.View()
	assert.False(t, v.Open)
	assert.False(t, v.Typing)
	assert.Empty(t, v.Messages)
	assert.ErrorIs(t, chat.Message(context.Background(), "hi"), ErrChatClosed)

	// reopening schedules the welcome again
	require.NoError(t, chat.Open())
	h.clock.Advance(1500 * time.Millisecond)
	assert.Len(t, chat.View().Messages, 1)
}

func TestChatReopenAsksPendingPrompt(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	chat := openChat(t, h)

	require.NoError(t, chat.SelectTopic("General contact"))
	chat.Close()
	h.clock.Advance(5 * time.Second)
	assert.Len(t, chat.View().Messages, 2)

	require.NoError(t, chat.Open())
	h.clock.Advance(1500 * time.Millisecond)
	v := chat.View()
	require.Len(t, v.Messages, 3)
	assert.Equal(t, "What would you like to discuss with our team?", v.Messages[2].Text)

	require.NoError(t, chat.Message(context.Background(), "Pricing"))
	assert.Len(t, chat.Answers(), 1)
}

func TestChatDispose(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	chat := openChat(t, h)
	require.NoError(t, chat.SelectTopic("Feedback"))

	chat.Dispose()
	assert.Zero(t, h.clock.Pending())
	assert.ErrorIs(t, chat.Open(), ErrChatDisposed)
	assert.ErrorIs(t, chat.Message(context.Background(), "x"), ErrChatDisposed)
}

func TestChatViewWaiting(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	chat := h.flows.NewChatSession(DefaultChatbotScript(), Visitor{})
	assert.False(t, chat.View().Waiting)

	require.NoError(t, chat.Open())
	assert.True(t, chat.View().Waiting)

	h.clock.Advance(1500 * time.Millisecond)
	assert.False(t, chat.View().Waiting)

	require.NoError(t, chat.SelectTopic("Feedback"))
	assert.True(t, chat.View().Waiting)
	chat.Close()
	assert.False(t, chat.View().Waiting)
}
