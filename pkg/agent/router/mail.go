package router

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

var meetingMention = regexp.MustCompile(`(?i)meet|meeting`)

func (r *Router) fetchEmails(ctx context.Context, req *Request, p intent.MailParams) (intent.ActionResponse, error) {
	if r.conn.Gmail == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	search := p.Search
	if search == "" {
		search = p.Filter
	}
	emails, err := r.conn.Gmail.ListEmails(ctx, connector.EmailQuery{
		Limit:  intent.ClampLimit(p.Limit, 50),
		Search: search,
		Date:   p.Date,
	})
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list gmail: %w", err)
	}

	if len(emails) == 0 {
		return intent.ReplyWithData(req.Intent.Action, "No matching emails found.", emails), nil
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d emails.", len(emails)), emails), nil
}

func (r *Router) sendEmail(ctx context.Context, req *Request, p intent.MailParams) (intent.ActionResponse, error) {
	to, ok := recipients(p.To)
	if !ok {
		return intent.Reply(req.Intent.Action, "Who should I send the email to?"), nil
	}
	if r.conn.Gmail == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	subject := p.Subject
	if subject == "" {
		subject = "Meeting Details"
	}

	body := p.Body
	if req.Intent.UsesContext || meetingMention.MatchString(req.Query) {
		if last, ok := req.Session.Last(); ok {
			body += fmt.Sprintf("\n\n📅 Google Meet\n🔗 %s\n🕒 %s – %s",
				last.Link, displayTime(last.Start, r.loc), displayTime(last.End, r.loc))
		}
	}

	if err := r.conn.Gmail.SendEmail(ctx, connector.OutgoingEmail{To: to, Subject: subject, Body: body}); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("send gmail: %w", err)
	}
	return intent.Reply(req.Intent.Action, "✅ Email sent."), nil
}

func (r *Router) fetchOutlookEmails(ctx context.Context, req *Request, p intent.MailParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if r.conn.Outlook == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	emails, err := r.conn.Outlook.ListEmails(ctx, token, intent.ClampLimit(p.Limit, 5), p.Search)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list outlook: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d Outlook emails.", len(emails)), emails), nil
}

func (r *Router) sendOutlookEmail(ctx context.Context, req *Request, p intent.MailParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	to, ok := recipients(p.To)
	if !ok {
		return intent.Reply(req.Intent.Action, "Who should I email?"), nil
	}
	if r.conn.Outlook == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	subject := p.Subject
	if subject == "" {
		subject = "No Subject"
	}
	if err := r.conn.Outlook.SendEmail(ctx, token, connector.OutgoingEmail{To: to, Subject: subject, Body: p.Body}); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("send outlook: %w", err)
	}
	return intent.Reply(req.Intent.Action, "✅ Outlook email sent successfully."), nil
}

// recipients valida a lista de destinatários vinda do modelo e devolve
// apenas os endereços, separados por vírgula
func recipients(to string) (string, bool) {
	to = strings.TrimSpace(to)
	if to == "" || strings.ContainsAny(to, "\r\n") {
		return "", false
	}
	list, err := mail.ParseAddressList(to)
	if err != nil || len(list) == 0 {
		return "", false
	}
	addrs := make([]string, len(list))
	for i, a := range list {
		addrs[i] = a.Address
	}
	return strings.Join(addrs, ", "), true
}
