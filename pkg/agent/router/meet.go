package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/session"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// MeetingDuration é a duração padrão de reuniões criadas pelo agente
const MeetingDuration = 30 * time.Minute

// meetingStart combina data (YYYY-MM-DD, opcional) e horário no fuso do router.
// Sem data, usa base; base zero significa hoje.
func (r *Router) meetingStart(date, clock string, base time.Time) (time.Time, error) {
	hour, minute, err := session.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	day := base
	if day.IsZero() {
		day = r.today()
	}
	day = day.In(r.loc)
	if strings.TrimSpace(date) != "" {
		day, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(date), r.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, r.loc), nil
}

func unclearTime(action intent.Action, when string) intent.ActionResponse {
	return intent.Reply(action, fmt.Sprintf("🕒 I couldn't understand %q. Please use a time like 5pm or 17:30 and a date like 2025-03-10.", when))
}

func (r *Router) createMeet(ctx context.Context, req *Request, p intent.MeetParams) (intent.ActionResponse, error) {
	if strings.TrimSpace(p.Time) == "" {
		return intent.Reply(req.Intent.Action, "🕒 Please tell me the meeting time (e.g. 5pm)"), nil
	}

	start, err := r.meetingStart(p.Date, p.Time, time.Time{})
	if err != nil {
		return unclearTime(req.Intent.Action, strings.TrimSpace(p.Date+" "+p.Time)), nil
	}
	if r.conn.Calendar == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	subject := p.Subject
	if subject == "" {
		subject = "Google Meet"
	}
	ev, err := r.conn.Calendar.CreateEvent(ctx, connector.EventInput{
		Subject:     subject,
		Description: p.Body,
		Start:       start,
		End:         start.Add(MeetingDuration),
	})
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create meet: %w", err)
	}
	if ev.Start.IsZero() {
		ev.Start, ev.End = start, start.Add(MeetingDuration)
	}

	req.Session.Add(session.Meeting{
		ExternalID:  ev.ExternalID,
		Link:        ev.Link,
		Start:       ev.Start,
		End:         ev.End,
		Title:       ev.Summary,
		Description: ev.Description,
	})

	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Google Meet created!\n🔗 %s\n🕒 %s", ev.Link, displayTime(ev.Start, r.loc)), ev), nil
}

func noMeeting(action intent.Action, hint string) intent.ActionResponse {
	if hint == "" {
		return intent.Reply(action, "No meeting found.")
	}
	return intent.Reply(action, fmt.Sprintf("No meeting found at %s.", hint))
}

// updateMeet localiza a reunião por fromTime (ou a última) e a move para time/date
func (r *Router) updateMeet(ctx context.Context, req *Request, p intent.MeetParams) (intent.ActionResponse, error) {
	hint := strings.TrimSpace(p.FromTime)
	matches := req.Session.Match(hint)
	if len(matches) == 0 {
		return noMeeting(req.Intent.Action, hint), nil
	}

	target := matches[0]
	if target.ExternalID == "" {
		return intent.Reply(req.Intent.Action, "Cannot reschedule this meeting."), nil
	}

	clock := strings.TrimSpace(p.Time)
	if clock == "" {
		clock = target.Start.In(r.loc).Format("15:04")
	}
	newStart, err := r.meetingStart(p.Date, clock, target.Start)
	if err != nil {
		return unclearTime(req.Intent.Action, strings.TrimSpace(p.Date+" "+p.Time)), nil
	}
	newEnd := newStart.Add(MeetingDuration)

	if r.conn.Calendar == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}
	if err := r.conn.Calendar.UpdateEvent(ctx, target.ExternalID, newStart, newEnd); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("update meet: %w", err)
	}

	if !req.Session.Update(target.Key, newStart, newEnd) {
		r.logger.Warn("Reunião removida durante o reagendamento", "eventId", target.ExternalID)
	}
	target.Start, target.End = newStart, newEnd

	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Meeting rescheduled to %s", displayTime(newStart, r.loc)), target), nil
}

func (r *Router) deleteMeet(ctx context.Context, req *Request, p intent.MeetParams) (intent.ActionResponse, error) {
	hint := strings.TrimSpace(p.Time)
	matches := req.Session.Match(hint)
	if len(matches) == 0 {
		return noMeeting(req.Intent.Action, hint), nil
	}

	target := matches[0]
	if target.ExternalID == "" {
		return intent.Reply(req.Intent.Action, "Cannot delete this meeting."), nil
	}
	if r.conn.Calendar == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	if err := r.conn.Calendar.DeleteEvent(ctx, target.ExternalID); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("delete meet: %w", err)
	}
	if !req.Session.Remove(target.Key) {
		r.logger.Warn("Reunião já removida da sessão", "eventId", target.ExternalID)
	}
	return intent.Reply(req.Intent.Action, "✅ Meeting deleted."), nil
}

func (r *Router) fetchCalendar(ctx context.Context, req *Request, p intent.MeetParams) (intent.ActionResponse, error) {
	if r.conn.Calendar == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	events, err := r.conn.Calendar.ListEvents(ctx, intent.ClampLimit(p.Limit, 10))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list events: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d upcoming events.", len(events)), events), nil
}

func (r *Router) createOutlookEvent(ctx context.Context, req *Request, p intent.MeetParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if strings.TrimSpace(p.Time) == "" {
		return intent.Reply(req.Intent.Action, "🕒 Please provide a time for the event."), nil
	}

	start, err := r.meetingStart(p.Date, p.Time, time.Time{})
	if err != nil {
		return unclearTime(req.Intent.Action, strings.TrimSpace(p.Date+" "+p.Time)), nil
	}
	if r.conn.Outlook == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	subject := p.Subject
	if subject == "" {
		subject = "Meeting"
	}
	ev, err := r.conn.Outlook.CreateEvent(ctx, token, connector.EventInput{
		Subject:     subject,
		Description: p.Body,
		Start:       start,
		End:         start.Add(MeetingDuration),
	})
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create outlook event: %w", err)
	}
	if ev.Start.IsZero() {
		ev.Start, ev.End = start, start.Add(MeetingDuration)
	}
	if ev.Summary == "" {
		ev.Summary = subject
	}

	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Outlook Calendar event created: %q at %s", ev.Summary, displayTime(ev.Start, r.loc)), ev), nil
}
