// Package gcal reads events from Google Calendar using service account
// credentials. The user shares their calendar with the service account
// email; no OAuth browser flow is involved.
package gcal

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/HendryAvila/rubberduck/internal/gtd"
)

// DefaultMaxResults caps one event query unless the caller asks for more.
const DefaultMaxResults = 25

// Client wraps the Calendar API for read-only event queries.
type Client struct {
	srv        *calendar.Service
	calendarID string
}

// NewClient builds a calendar client from credentials in the environment:
// GOOGLE_SERVICE_ACCOUNT_JSON holds a base64-encoded key (preferred for
// secrets), GOOGLE_SERVICE_ACCOUNT_FILE a path to the key file. Returns
// (nil, nil) when neither is set; the calendar is simply disabled. An
// empty calendarID means the account's primary calendar.
func NewClient(ctx context.Context, calendarID string) (*Client, error) {
	opt, ok, err := credentialOption()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	srv, err := calendar.NewService(ctx, opt, option.WithScopes(calendar.CalendarReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("building calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{srv: srv, calendarID: calendarID}, nil
}

func credentialOption() (option.ClientOption, bool, error) {
	if b64 := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); b64 != "" {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, false, fmt.Errorf("decoding GOOGLE_SERVICE_ACCOUNT_JSON: %w", err)
		}
		return option.WithCredentialsJSON(data), true, nil
	}
	if path := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"); path != "" {
		return option.WithCredentialsFile(path), true, nil
	}
	return nil, false, nil
}

// EventsBetween lists events in [from, to), expanded to single events and
// ordered by start time.
func (c *Client) EventsBetween(ctx context.Context, from, to time.Time, maxResults int64) ([]gtd.Event, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	result, err := c.srv.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}

	events := make([]gtd.Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, normalizeEvent(item))
	}
	return events, nil
}

// normalizeEvent flattens the API's nested start/end objects. All-day
// events carry a bare date instead of a timestamp.
func normalizeEvent(item *calendar.Event) gtd.Event {
	e := gtd.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Location:    item.Location,
		Description: item.Description,
	}
	if item.Start != nil {
		if item.Start.DateTime != "" {
			e.Start = item.Start.DateTime
		} else {
			e.Start = item.Start.Date
			e.AllDay = true
		}
	}
	if item.End != nil {
		if item.End.DateTime != "" {
			e.End = item.End.DateTime
		} else {
			e.End = item.End.Date
		}
	}
	return e
}
