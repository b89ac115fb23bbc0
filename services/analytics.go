package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"morningful_landing_go/models"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsAppName is attached to every event as app_name
const AnalyticsAppName = "morningful_landing_page"

const analyticsSendTimeout = 5 * time.Second

var (
	gaCollectURL     = "https://www.google-analytics.com/mp/collect"
	mixpanelTrackURL = "https://api.mixpanel.com/track"
)

// TrackedEvent is one analytics event with a flat parameter record
type TrackedEvent struct {
	Name     string
	ClientID string
	Country  string
	Params   map[string]any
	Time     time.Time
}

// AnalyticsSink receives events. Implementations must be safe for concurrent use.
type AnalyticsSink interface {
	Send(ctx context.Context, event TrackedEvent) error
}

// Analytics fans events out to every configured sink. Delivery is
// fire-and-forget; sink errors are logged and never reach the caller.
type Analytics struct {
	sinks []AnalyticsSink
	wg    sync.WaitGroup
}

func NewAnalytics(sinks ...AnalyticsSink) *Analytics {
	return &Analytics{sinks: sinks}
}

// Dispatch delivers the event to every sink and waits for them
func (a *Analytics) Dispatch(ctx context.Context, event TrackedEvent) error {
	if a == nil {
		return nil
	}
	event = withDefaults(event)

	var errs []error
	for _, sink := range a.sinks {
		if err := sink.Send(ctx, event); err != nil {
			log.Printf("[WARNING] Analytics sink %T failed for %s: %v", sink, event.Name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogEvent dispatches an event in the background
func (a *Analytics) LogEvent(clientID, country, name string, params map[string]any) {
	if a == nil || len(a.sinks) == 0 {
		return
	}
	event := TrackedEvent{Name: name, ClientID: clientID, Country: country, Params: params}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), analyticsSendTimeout)
		defer cancel()
		_ = a.Dispatch(ctx, event)
	}()
}

// Wait blocks until background dispatches have finished
func (a *Analytics) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}

func withDefaults(event TrackedEvent) TrackedEvent {
	params := make(map[string]any, len(event.Params)+1)
	params["app_name"] = AnalyticsAppName
	for k, v := range event.Params {
		params[k] = v
	}
	event.Params = params
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	return event
}

// TrackModalOpened records a lead modal being opened
func (a *Analytics) TrackModalOpened(clientID, country string, leadType models.LeadType) {
	a.LogEvent(clientID, country, string(leadType)+"_modal_opened", map[string]any{
		"event_category": "engagement",
		"event_label":    "modal_interaction",
	})
}

// TrackLeadSubmitted records a successful lead submission
func (a *Analytics) TrackLeadSubmitted(clientID, country string, leadType models.LeadType, values map[string]string) {
	name := string(leadType) + "_request_submitted"
	if leadType == models.LeadBetaWaitlist {
		// the waitlist shares the demo conversion event
		name = "demo_request_submitted"
	}
	company := values[models.FieldBusinessName]
	if company == "" {
		company = "unknown"
	}
	a.LogEvent(clientID, country, name, map[string]any{
		"event_category": "engagement",
		"event_label":    "landing_page_form",
		"value":          1,
		"custom_parameters": map[string]any{
			"company":      company,
			"email_domain": emailDomain(values[models.FieldEmail]),
		},
	})
}

// TrackLeadFailed records a failed lead submission with its reason
func (a *Analytics) TrackLeadFailed(clientID, country string, leadType models.LeadType, reason string) {
	if reason == "" {
		reason = "unknown_error"
	}
	a.LogEvent(clientID, country, string(leadType)+"_request_failed", map[string]any{
		"event_category": "form_submission",
		"event_label":    "api_error",
		"error_message":  reason,
	})
}

// TrackLeadError records a submission that broke outside the request itself
func (a *Analytics) TrackLeadError(clientID, country string, leadType models.LeadType, message string) {
	if message == "" {
		message = "Unknown error"
	}
	a.LogEvent(clientID, country, string(leadType)+"_request_error", map[string]any{
		"event_category": "form_submission",
		"event_label":    "unexpected_error",
		"error_message":  message,
	})
}

// TrackCTAClick records a call-to-action click
func (a *Analytics) TrackCTAClick(clientID, country, buttonText, section string) {
	a.LogEvent(clientID, country, "cta_button_click", map[string]any{
		"event_category": "engagement",
		"event_label":    buttonText,
		"custom_parameters": map[string]any{
			"section":     section,
			"button_text": buttonText,
		},
	})
}

// TrackNavigation records a navigation click
func (a *Analytics) TrackNavigation(clientID, country, item string) {
	a.LogEvent(clientID, country, "navigation_click", map[string]any{
		"event_category": "navigation",
		"event_label":    item,
		"custom_parameters": map[string]any{
			"navigation_item": item,
		},
	})
}

// TrackScrollDepth records how far down the page the visitor scrolled
func (a *Analytics) TrackScrollDepth(clientID, country string, percentage int) {
	a.LogEvent(clientID, country, "scroll_depth", map[string]any{
		"event_category": "engagement",
		"event_label":    fmt.Sprintf("%d%%", percentage),
		"value":          percentage,
	})
}

// TrackFeatureInteraction records an interaction with a page feature
func (a *Analytics) TrackFeatureInteraction(clientID, country, feature, action string) {
	a.LogEvent(clientID, country, "feature_interaction", map[string]any{
		"event_category": "features",
		"event_label":    feature + "_" + action,
		"custom_parameters": map[string]any{
			"feature_name":     feature,
			"interaction_type": action,
		},
	})
}

// LogPageView records a page view
func (a *Analytics) LogPageView(clientID, country, path, title string) {
	a.LogEvent(clientID, country, "page_view", map[string]any{
		"page_path":  path,
		"page_title": title,
	})
}

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 && i < len(email)-1 {
		return email[i+1:]
	}
	return "unknown"
}

// flattenParams lifts nested parameter records to the top level, as both
// vendors only accept flat event parameters
func flattenParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range nested {
				out[nk] = nv
			}
			continue
		}
		out[k] = v
	}
	return out
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("analytics endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// GoogleAnalyticsSink sends events through the GA4 Measurement Protocol
type GoogleAnalyticsSink struct {
	MeasurementID string
	APISecret     string
	HTTPClient    *http.Client
}

type gaPayload struct {
	ClientID string    `json:"client_id"`
	Events   []gaEvent `json:"events"`
}

type gaEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

func (s *GoogleAnalyticsSink) Send(ctx context.Context, event TrackedEvent) error {
	q := url.Values{}
	q.Set("measurement_id", s.MeasurementID)
	q.Set("api_secret", s.APISecret)

	clientID := event.ClientID
	if clientID == "" {
		clientID = "anonymous"
	}
	return postJSON(ctx, httpClientOrDefault(s.HTTPClient), gaCollectURL+"?"+q.Encode(), gaPayload{
		ClientID: clientID,
		Events:   []gaEvent{{Name: event.Name, Params: flattenParams(event.Params)}},
	})
}

// MixpanelSink sends events to the Mixpanel ingestion API. Events from
// blocked countries are dropped.
type MixpanelSink struct {
	Token            string
	BlockedCountries []string
	HTTPClient       *http.Client
}

type mixpanelEvent struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

func (s *MixpanelSink) Send(ctx context.Context, event TrackedEvent) error {
	if s.isBlocked(event.Country) {
		return nil
	}
	props := flattenParams(event.Params)
	props["token"] = s.Token
	props["distinct_id"] = event.ClientID
	props["time"] = event.Time.UnixMilli()
	props["$insert_id"] = uuid.New().String()

	return postJSON(ctx, httpClientOrDefault(s.HTTPClient), mixpanelTrackURL, []mixpanelEvent{
		{Event: event.Name, Properties: props},
	})
}

func (s *MixpanelSink) isBlocked(country string) bool {
	for _, c := range s.BlockedCountries {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

// DatabaseSink records events in the analytics_events table
type DatabaseSink struct {
	DB *gorm.DB
}

func (s *DatabaseSink) Send(ctx context.Context, event TrackedEvent) error {
	params, err := sonic.MarshalString(event.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	record := models.AnalyticsEvent{
		CreatedAt: event.Time,
		Name:      event.Name,
		ClientID:  event.ClientID,
		Country:   event.Country,
		Params:    params,
	}
	if err := s.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store analytics event: %w", err)
	}
	return nil
}

// LogSink prints events, used in development in place of the vendors
type LogSink struct{}

func (LogSink) Send(ctx context.Context, event TrackedEvent) error {
	log.Printf("Analytics Event: %s client=%s params=%v", event.Name, event.ClientID, event.Params)
	return nil
}

func httpClientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
