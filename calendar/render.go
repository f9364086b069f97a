package calendar

import (
	"time"

	"f1calendar/model"

	ics "github.com/arran4/golang-ical"
)

const productName = "f1calendar"

// Render serializes events, in order, to iCalendar text. stamp is written as every event's DTSTAMP.
func Render(name string, events []model.Event, stamp time.Time) string {
	cal := ics.NewCalendarFor(productName)
	cal.SetMethod(ics.MethodPublish)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, e := range events {
		event := cal.AddEvent(e.UID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(e.StartTime)
		event.SetEndAt(e.EndTime)
		event.SetSummary(e.Summary)
		event.SetLocation(e.Location)
		if e.URL != "" {
			event.SetURL(e.URL)
		}
	}

	return cal.Serialize()
}
