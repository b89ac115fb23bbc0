package handlers

import (
	"context"
	"errors"
	"net/http"

	"morningful_landing_go/middleware"
	"morningful_landing_go/services"
	"morningful_landing_go/templates/partials"

	"github.com/labstack/echo/v4"
)

func currentChat(c echo.Context) (*services.ChatSession, error) {
	state, err := visitorState(c)
	if err != nil {
		return nil, err
	}
	return state.Chat(), nil
}

func renderChat(c echo.Context, chat *services.ChatSession) error {
	return render(c, partials.ChatWidget(chat.View()))
}

// chatError re-renders the widget for errors the visitor can recover from
func chatError(c echo.Context, chat *services.ChatSession, err error) error {
	switch {
	case errors.Is(err, services.ErrChatDisposed):
		return echo.NewHTTPError(http.StatusGone, "Session expired, please reload the page").SetInternal(err)
	case errors.Is(err, services.ErrChatClosed),
		errors.Is(err, services.ErrTopicRequired),
		errors.Is(err, services.ErrTopicChosen):
		return renderChat(c, chat)
	default:
		c.Logger().Errorf("chatbot: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Chat is unavailable").SetInternal(err)
	}
}

// GetChatHandler renders the widget for the current session state
func GetChatHandler(c echo.Context) error {
	chat, err := currentChat(c)
	if err != nil {
		return err
	}
	return renderChat(c, chat)
}

func OpenChatHandler(c echo.Context) error {
	chat, err := currentChat(c)
	if err != nil {
		return err
	}
	if err := chat.Open(); err != nil {
		return chatError(c, chat, err)
	}
	getAnalytics(c).TrackFeatureInteraction(middleware.GetSessionID(c), middleware.GetCountry(c), "chatbot", "open")
	return renderChat(c, chat)
}

func CloseChatHandler(c echo.Context) error {
	chat, err := currentChat(c)
	if err != nil {
		return err
	}
	chat.Close()
	return renderChat(c, chat)
}

func SelectTopicHandler(c echo.Context) error {
	chat, err := currentChat(c)
	if err != nil {
		return err
	}
	if err := chat.SelectTopic(c.FormValue("topic")); err != nil {
		return chatError(c, chat, err)
	}
	return renderChat(c, chat)
}

// ChatMessageHandler records an answer. The last answer submits the
// conversation and blocks until the submission finishes.
func ChatMessageHandler(c echo.Context) error {
	chat, err := currentChat(c)
	if err != nil {
		return err
	}
	if err := chat.Message(context.WithoutCancel(c.Request().Context()), c.FormValue("message")); err != nil {
		return chatError(c, chat, err)
	}
	return renderChat(c, chat)
}
