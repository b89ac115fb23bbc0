package services

import (
	"context"
	"fmt"
	"log"
	"morningful_landing_go/config"
	"morningful_landing_go/models"
	"morningful_landing_go/services/guided"
	"time"
)

// Visitor identifies who a flow is running for
type Visitor struct {
	SessionID string
	Country   string
}

var formFields = map[models.LeadType][]string{
	models.LeadDemoRequest: {
		models.FieldFirstName, models.FieldLastName, models.FieldPhoneNumber,
		models.FieldBusinessName, models.FieldBusinessLocation, models.FieldBusinessSize,
	},
	models.LeadBetaWaitlist: {
		models.FieldFirstName, models.FieldLastName, models.FieldEmail,
		models.FieldBusinessName, models.FieldBusinessLocation, models.FieldBusinessSize,
		models.FieldExpectedBanks,
	},
	models.LeadContact: {
		models.FieldName, models.FieldEmail, models.FieldMessage,
	},
}

var formValidators = map[models.LeadType]guided.ValidateFunc{
	models.LeadDemoRequest:  ValidateDemoRequest,
	models.LeadBetaWaitlist: ValidateBetaWaitlist,
	models.LeadContact:      ValidateContact,
}

// FormFields returns the ordered fields of a modal flow
func FormFields(leadType models.LeadType) []string {
	return append([]string(nil), formFields[leadType]...)
}

// Flows builds guided controllers for every lead-capture flow and attaches
// the side effects of a submission: analytics, emails and diagnostics.
type Flows struct {
	cfg         *config.Config
	client      *LeadClient
	analytics   *Analytics
	diagnostics *Diagnostics
	clock       guided.Clock
	sendEmail   func(cfg *config.Config, email *Email)
}

func NewFlows(cfg *config.Config, client *LeadClient, analytics *Analytics, diagnostics *Diagnostics) *Flows {
	return &Flows{
		cfg:         cfg,
		client:      client,
		analytics:   analytics,
		diagnostics: diagnostics,
		clock:       guided.SystemClock{},
		sendEmail:   SendEmailAsync,
	}
}

// WithClock returns a copy of f whose controllers use clock for their timers
func (f *Flows) WithClock(clock guided.Clock) *Flows {
	cp := *f
	cp.clock = clock
	return &cp
}

// Clock returns the clock handed to new controllers
func (f *Flows) Clock() guided.Clock {
	return f.clock
}

func (f *Flows) autoCloseDelay() time.Duration {
	if f.cfg == nil || f.cfg.AutoCloseDelay == 0 {
		return config.DefaultAutoCloseDelay
	}
	return f.cfg.AutoCloseDelay
}

// NewForm builds a closed controller for one of the modal flows
func (f *Flows) NewForm(leadType models.LeadType, visitor Visitor) (*guided.Controller, error) {
	fields, ok := formFields[leadType]
	if !ok {
		return nil, fmt.Errorf("unknown form flow: %s", leadType)
	}

	schema := guided.Schema{
		Name:      string(leadType),
		Fields:    fields,
		Validate:  formValidators[leadType],
		AutoClose: f.autoCloseDelay(),
		Submit: f.timedSubmit(leadType, visitor, func(ctx context.Context, values map[string]string) guided.Result {
			payload, err := buildFormPayload(leadType, SanitizeValues(values))
			if err != nil {
				return guided.Failure(err.Error())
			}
			return f.client.Submit(ctx, leadType, payload)
		}),
		OnSuccess: func(values map[string]string, result guided.Result) {
			f.analytics.TrackLeadSubmitted(visitor.SessionID, visitor.Country, leadType, values)
			f.notify(leadType, visitor, fields, SanitizeValues(values))
		},
		OnFailure: func(values map[string]string, result guided.Result) {
			f.trackFailure(visitor, leadType, result)
		},
	}
	return guided.New(schema, guided.WithClock(f.clock)), nil
}

func (f *Flows) trackFailure(visitor Visitor, leadType models.LeadType, result guided.Result) {
	if result.Unexpected {
		f.analytics.TrackLeadError(visitor.SessionID, visitor.Country, leadType, result.Reason)
		return
	}
	f.analytics.TrackLeadFailed(visitor.SessionID, visitor.Country, leadType, result.Reason)
}

// timedSubmit wraps a submit function so every attempt lands in diagnostics
func (f *Flows) timedSubmit(leadType models.LeadType, visitor Visitor, submit guided.SubmitFunc) guided.SubmitFunc {
	return func(ctx context.Context, values map[string]string) guided.Result {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				f.diagnostics.RecordSubmission(leadType, visitor.SessionID, false, fmt.Sprint(r), time.Since(start))
				panic(r)
			}
		}()
		result := submit(ctx, values)
		f.diagnostics.RecordSubmission(leadType, visitor.SessionID, result.OK, result.Reason, time.Since(start))
		return result
	}
}

func (f *Flows) notify(leadType models.LeadType, visitor Visitor, fields []string, values map[string]string) {
	if f.cfg == nil {
		return
	}

	confirmation, err := BuildLeadConfirmationEmail(leadType, values, f.cfg.AppURL)
	if err != nil {
		log.Printf("[ERROR] Failed to build %s confirmation email: %v", leadType, err)
	} else if confirmation != nil {
		f.sendEmail(f.cfg, confirmation)
	}

	if f.cfg.SalesNotifyEmail == "" {
		return
	}
	notice, err := BuildSalesNotificationEmail(f.cfg.SalesNotifyEmail, leadType, visitor.SessionID, fields, values)
	if err != nil {
		log.Printf("[ERROR] Failed to build %s sales notification: %v", leadType, err)
		return
	}
	f.sendEmail(f.cfg, notice)
}

// buildFormPayload maps validated, sanitised form values onto the API payload
func buildFormPayload(leadType models.LeadType, v map[string]string) (any, error) {
	switch leadType {
	case models.LeadDemoRequest:
		return models.DemoRequest{
			FirstName:        v[models.FieldFirstName],
			LastName:         v[models.FieldLastName],
			PhoneNumber:      v[models.FieldPhoneNumber],
			BusinessName:     v[models.FieldBusinessName],
			BusinessLocation: v[models.FieldBusinessLocation],
			BusinessSize:     v[models.FieldBusinessSize],
		}, nil
	case models.LeadBetaWaitlist:
		banks, ok := ParseExpectedBanks(v[models.FieldExpectedBanks])
		if !ok {
			return nil, fmt.Errorf("invalid expected banks: %q", v[models.FieldExpectedBanks])
		}
		return models.BetaWaitlistRequest{
			FirstName:        v[models.FieldFirstName],
			LastName:         v[models.FieldLastName],
			Email:            v[models.FieldEmail],
			BusinessName:     v[models.FieldBusinessName],
			BusinessLocation: v[models.FieldBusinessLocation],
			BusinessSize:     v[models.FieldBusinessSize],
			ExpectedBanks:    banks,
		}, nil
	case models.LeadContact:
		return models.ContactRequest{
			Name:    v[models.FieldName],
			Email:   v[models.FieldEmail],
			Message: v[models.FieldMessage],
		}, nil
	}
	return nil, fmt.Errorf("unknown form flow: %s", leadType)
}
