package calendar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

const (
	icsProdID   = "-//Fitness App//Training Calendar//EN"
	icsUIDHost  = "fitness-app"
	icsLineMax  = 75
	icsDateForm = "20060102"
)

// WriteICS writes events as an iCalendar feed of all-day VEVENTs.
func WriteICS(w io.Writer, name string, events []schedule.Event, now time.Time) error {
	bw := bufio.NewWriter(w)
	stamp := now.UTC().Format("20060102T150405Z")

	writeLine(bw, "BEGIN:VCALENDAR")
	writeLine(bw, "VERSION:2.0")
	writeLine(bw, "PRODID:"+icsProdID)
	writeLine(bw, "CALSCALE:GREGORIAN")
	writeLine(bw, "METHOD:PUBLISH")
	if name != "" {
		writeLine(bw, "X-WR-CALNAME:"+escapeICS(name))
	}
	for _, e := range events {
		writeLine(bw, "BEGIN:VEVENT")
		writeLine(bw, "UID:"+e.ID+"@"+icsUIDHost)
		writeLine(bw, "DTSTAMP:"+stamp)
		writeLine(bw, "DTSTART;VALUE=DATE:"+e.Date.Time().Format(icsDateForm))
		writeLine(bw, "DTEND;VALUE=DATE:"+e.Date.AddDays(1).Time().Format(icsDateForm))
		writeLine(bw, "SUMMARY:"+escapeICS(e.Title))
		if desc := eventDescription(e); desc != "" {
			writeLine(bw, "DESCRIPTION:"+escapeICS(desc))
		}
		if e.Intensity != "" {
			writeLine(bw, "CATEGORIES:"+escapeICS(e.Intensity))
		}
		writeLine(bw, "TRANSP:TRANSPARENT")
		writeLine(bw, "END:VEVENT")
	}
	writeLine(bw, "END:VCALENDAR")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

func eventDescription(e schedule.Event) string {
	lines := make([]string, 0, len(e.Exercises)+2) //nolint:mnd // header and description
	lines = append(lines, fmt.Sprintf("%s, week %d, day %d", e.SplitName, e.WeekNumber, e.DayInWeek))
	if e.Description != "" {
		lines = append(lines, e.Description)
	}
	for _, ex := range e.Exercises {
		line := "- " + ex.Name
		if ex.Sets != nil && ex.Reps != nil {
			line += fmt.Sprintf(": %d x %d", *ex.Sets, *ex.Reps)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// writeLine writes a content line folded at 75 octets. Errors surface on Flush.
func writeLine(w *bufio.Writer, line string) {
	limit := icsLineMax
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		_, _ = w.WriteString(line[:cut])
		_, _ = w.WriteString("\r\n ")
		line = line[cut:]
		// The leading space of a continuation line counts towards its length.
		limit = icsLineMax - 1
	}
	_, _ = w.WriteString(line)
	_, _ = w.WriteString("\r\n")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
