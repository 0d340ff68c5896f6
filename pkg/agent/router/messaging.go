package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// Shopify

func (r *Router) fetchOrders(ctx context.Context, req *Request, p intent.OrderParams) (intent.ActionResponse, error) {
	creds := req.Credentials.Shopify
	if !creds.Ready() {
		return intent.ActionResponse{}, connector.ErrNotAuthenticated
	}
	if r.conn.Shopify == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	q := connector.OrderQuery{
		Limit:  intent.ClampLimit(p.Limit, 5),
		Status: strings.ToLower(strings.TrimSpace(p.Status)),
	}
	if date := strings.TrimSpace(p.Date); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, r.loc)
		if err != nil {
			return unclearTime(req.Intent.Action, date), nil
		}
		q.CreatedAtMin = day.Format(time.RFC3339)
		q.CreatedAtMax = day.Add(24*time.Hour - time.Second).Format(time.RFC3339)
	}

	orders, err := r.conn.Shopify.ListOrders(ctx, *creds, q)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list orders: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d Shopify orders.", len(orders)), orders), nil
}

// Teams

func (r *Router) fetchTeamsMessages(ctx context.Context, req *Request, p intent.TeamsParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if r.conn.Teams == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	messages, err := r.conn.Teams.ListMessages(ctx, token, intent.ClampLimit(p.Limit, 5))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list teams messages: %w", err)
	}

	term := p.Search
	if term == "" {
		term = p.Filter
	}
	if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
		filtered := make([]connector.TeamsMessage, 0, len(messages))
		for _, m := range messages {
			haystack := strings.ToLower(m.Subject + " " + m.Body + " " + m.FromName)
			if strings.Contains(haystack, term) {
				filtered = append(filtered, m)
			}
		}
		messages = filtered
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d Teams messages.", len(messages)), messages), nil
}

func (r *Router) fetchTeamsChannels(ctx context.Context, req *Request, p intent.TeamsParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if r.conn.Teams == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	channels, err := r.conn.Teams.ListChannels(ctx, token, intent.ClampLimit(p.Limit, 10))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list teams channels: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d Teams channels.", len(channels)), channels), nil
}

// Telegram

func (r *Router) fetchTelegramUpdates(ctx context.Context, req *Request, p intent.TelegramParams) (intent.ActionResponse, error) {
	token, err := r.telegramToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if r.conn.Telegram == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	messages, err := r.conn.Telegram.GetRecentMessages(ctx, token, intent.ClampLimit(p.Limit, 5))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("telegram updates: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Found %d recent messages sent to the bot.", len(messages)), messages), nil
}

func (r *Router) sendTelegramMessage(ctx context.Context, req *Request, p intent.TelegramParams) (intent.ActionResponse, error) {
	token, err := r.telegramToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	chatID := strings.TrimSpace(p.ChatID)
	if chatID == "" || strings.TrimSpace(p.Text) == "" {
		return intent.Reply(req.Intent.Action, "I need a Chat ID (or @username) and a message text."), nil
	}
	if r.conn.Telegram == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	sent, err := r.conn.Telegram.SendMessage(ctx, token, chatID, p.Text)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("telegram send: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Sent to Telegram chat %q.", chatID), sent), nil
}

// manageTelegramGroup usa o parâmetro "action" como discriminador: kick, pin ou title
func (r *Router) manageTelegramGroup(ctx context.Context, req *Request, p intent.TelegramParams) (intent.ActionResponse, error) {
	token, err := r.telegramToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	chatID := strings.TrimSpace(p.ChatID)
	op := strings.ToLower(strings.TrimSpace(p.Action))
	if chatID == "" || op == "" {
		return intent.Reply(req.Intent.Action, "Missing Chat ID or Action."), nil
	}
	if r.conn.Telegram == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	switch {
	case op == "kick" && p.UserID != 0:
		if err := r.conn.Telegram.RemoveMember(ctx, token, chatID, p.UserID); err != nil {
			return intent.ActionResponse{}, fmt.Errorf("telegram kick: %w", err)
		}
		return intent.Reply(req.Intent.Action, fmt.Sprintf("✅ User %d kicked.", p.UserID)), nil

	case op == "pin" && p.MessageID != 0:
		if err := r.conn.Telegram.PinMessage(ctx, token, chatID, p.MessageID); err != nil {
			return intent.ActionResponse{}, fmt.Errorf("telegram pin: %w", err)
		}
		return intent.Reply(req.Intent.Action, "✅ Message pinned."), nil

	case op == "title" && strings.TrimSpace(p.Value) != "":
		if err := r.conn.Telegram.RenameChat(ctx, token, chatID, p.Value); err != nil {
			return intent.ActionResponse{}, fmt.Errorf("telegram title: %w", err)
		}
		return intent.Reply(req.Intent.Action, fmt.Sprintf("✅ Title changed to %q.", p.Value)), nil

	default:
		return intent.Reply(req.Intent.Action,
			fmt.Sprintf("⚠️ Action %q is not supported or is missing parameters.", p.Action)), nil
	}
}
