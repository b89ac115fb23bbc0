package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"morningful_landing_go/models"
	"morningful_landing_go/services/guided"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// DefaultSubmitTimeout bounds one lead submission
const DefaultSubmitTimeout = 10 * time.Second

var leadEndpoints = map[models.LeadType]string{
	models.LeadDemoRequest:  "/api/BusinessContact",
	models.LeadBetaWaitlist: "/api/BusinessContact/join-beta-waitlist",
	models.LeadContact:      "/api/BusinessContact/contact-sales",
	models.LeadChatbot:      "/api/BusinessContact/chatbot-request",
}

// requiredLeadFields lists, per lead type, the payload keys that must be truthy
var requiredLeadFields = map[models.LeadType][]string{
	models.LeadDemoRequest:  {"firstName", "lastName", "phoneNumber", "businessName", "businessLocation", "businessSize"},
	models.LeadBetaWaitlist: {"firstName", "lastName", "email", "businessName", "businessLocation", "businessSize"},
	models.LeadContact:      {"name", "email", "message"},
	models.LeadChatbot:      {"ChosenTopic", "Question1", "Question2", "Question3", "Answer1", "Answer2", "Answer3"},
}

// LeadClient forwards completed lead payloads to the lead-intake API
type LeadClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewLeadClient creates a client for the API at baseURL. A non-positive
// timeout falls back to DefaultSubmitTimeout.
func NewLeadClient(baseURL string, timeout time.Duration) *LeadClient {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &LeadClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Endpoint returns the API path for a lead type
func Endpoint(leadType models.LeadType) (string, bool) {
	path, ok := leadEndpoints[leadType]
	return path, ok
}

// Submit posts payload to the endpoint of leadType. It never returns an
// error: every outcome is folded into a guided.Result. No retries are made.
func (c *LeadClient) Submit(ctx context.Context, leadType models.LeadType, payload any) guided.Result {
	endpoint, ok := leadEndpoints[leadType]
	if !ok {
		return guided.Failure(fmt.Sprintf("unknown lead type: %s", leadType))
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return guided.Failure(fmt.Sprintf("failed to encode payload: %v", err))
	}

	if missing := missingRequiredFields(body, requiredLeadFields[leadType]); len(missing) > 0 {
		return guided.Failure("Missing required fields: " + strings.Join(missing, ", "))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return guided.Failure(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[WARNING] API request failed for %s: %v", endpoint, err)
		switch {
		case errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			return guided.Failure("Request timeout")
		case ctx.Err() != nil:
			return guided.Failure("Request cancelled")
		}
		return guided.Failure(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[WARNING] API request failed for %s: status %d", endpoint, resp.StatusCode)
		return guided.Failure(fmt.Sprintf("HTTP error! status: %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return guided.Failure("Request timeout")
		}
		return guided.Failure(err.Error())
	}
	return guided.Success(decodeResponseBody(raw))
}

// decodeResponseBody returns the decoded JSON body, or nil when the body is
// empty or not JSON
func decodeResponseBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var data any
	if err := sonic.Unmarshal(raw, &data); err != nil {
		log.Printf("[WARNING] Failed to parse JSON response: %v", err)
		return nil
	}
	return data
}

// missingRequiredFields returns the required keys whose encoded value is falsy
func missingRequiredFields(body []byte, required []string) []string {
	var doc map[string]any
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return append([]string(nil), required...)
	}
	var missing []string
	for _, field := range required {
		if isFalsy(doc[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	}
	return false
}
