// Package icalendar renders calendar events as RFC 5545 documents for the
// export endpoint.
package icalendar

import (
	"bytes"
	"fmt"
	"time"

	"faithhub.app/models"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Encode renders a single event as a VCALENDAR document. now stamps DTSTAMP
// so output stays deterministic under test.
func Encode(event *models.CalendarEvent, prodID string, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	cal.Children = append(cal.Children, component(event, now))

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode icalendar: %w", err)
	}
	return buf.Bytes(), nil
}

func component(event *models.CalendarEvent, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("%s@faithhub.app", uuid.NewString()))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime.UTC())
	ve.Props.SetText(ical.PropSummary, event.Title)
	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	if event.Location != "" {
		ve.Props.SetText(ical.PropLocation, event.Location)
	}
	if event.MeetingLink != "" {
		ve.Props.SetText(ical.PropURL, event.MeetingLink)
	}
	return ve
}
