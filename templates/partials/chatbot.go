package partials

import (
	"context"
	"io"

	"morningful_landing_go/services"
	"morningful_landing_go/templates/components"

	"github.com/a-h/templ"
)

// ChatLauncher is the floating button that opens the assistant
func ChatLauncher() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<button type="button" class="chat-launcher" aria-label="Open chat assistant" hx-post="/chat/open" hx-target="#chatbot-root" data-feature="chatbot">&#128172;</button>`)
		return h.Err()
	})
}

// ChatWidget renders the assistant panel. While a bot message is pending the
// panel reloads itself from /chat so the typing indicator and the message
// appear without user input.
func ChatWidget(v services.ChatView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		if !v.Open {
			h.Render(ctx, ChatLauncher())
			return h.Err()
		}

		h.Raw(`<section class="chat-panel" aria-label="Cash Flow Assistant">`)
		h.Raw(`<header class="chat-header"><div><h3>Cash Flow Assistant</h3><p>Let's optimize your cash flow management</p></div>`)
		h.Raw(`<button type="button" class="chat-close" aria-label="Close chat" hx-post="/chat/close" hx-target="#chatbot-root">&times;</button></header>`)

		h.Raw(`<ol class="chat-messages" aria-live="polite">`)
		for _, m := range v.Messages {
			class := "from-user"
			if m.IsBot {
				class = "from-bot"
			}
			h.Printf(`<li class="chat-message %s" id="msg-%s"><p>%s</p><time>%s</time></li>`, class, m.ID, m.Text, formatMessageTime(m.Time))
		}
		if v.Typing {
			h.Raw(`<li class="chat-message from-bot typing" aria-label="Assistant is typing"><span></span><span></span><span></span></li>`)
		}
		h.Raw(`</ol>`)

		if len(v.Topics) > 0 {
			h.Raw(`<div class="chat-topics">`)
			for _, topic := range v.Topics {
				h.Printf(`<button type="button" class="chip" hx-post="/chat/topic" hx-target="#chatbot-root" hx-vals="%s">%s</button>`,
					components.JSON(map[string]string{"topic": topic}), topic)
			}
			h.Raw(`</div>`)
		}

		if !v.Complete {
			disabled := !v.AcceptsInput
			h.Raw(`<form class="chat-input" hx-post="/chat/message" hx-target="#chatbot-root" hx-disabled-elt="find button">`)
			h.Printf(`<input type="text" name="message" autocomplete="off" placeholder="Type your response..." aria-label="Your message"%s>`, components.BoolAttr(disabled, "disabled"))
			h.Printf(`<button type="submit" class="btn btn-primary"%s>Send</button>`, components.BoolAttr(disabled, "disabled"))
			h.Raw(`</form>`)
		}

		if v.Waiting {
			h.Raw(`<div hx-get="/chat" hx-trigger="load delay:500ms" hx-target="#chatbot-root"></div>`)
		}
		h.Raw(`</section>`)
		return h.Err()
	})
}
