package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/resolver"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// DefaultSheetRange é lido quando o usuário não informa um intervalo
const DefaultSheetRange = "Sheet1!A1:E10"

func (r *Router) createSheet(ctx context.Context, req *Request, p intent.SheetParams) (intent.ActionResponse, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return intent.Reply(req.Intent.Action, "Please provide a name for the Google Sheet."), nil
	}
	if r.conn.Sheets == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	sheet, err := r.conn.Sheets.CreateSpreadsheet(ctx, title, p.SheetName)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create spreadsheet: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Google Sheet created successfully!\n📄 %s", sheet.SpreadsheetURL), sheet), nil
}

func (r *Router) readSheet(ctx context.Context, req *Request, p intent.SheetParams) (intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.Title, ExplicitID: p.SpreadsheetID}
	if isEmpty(ref) {
		return intent.Reply(req.Intent.Action, "Which spreadsheet? Please tell me its name."), nil
	}

	res, err := r.docs.Resolve(ctx, ref, resolver.GoogleSheetType)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if !res.Found {
		return intent.Reply(req.Intent.Action, fmt.Sprintf("❌ Could not find a spreadsheet named %q.", res.Name)), nil
	}
	if r.conn.Sheets == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	rng := p.Range
	if rng == "" {
		rng = DefaultSheetRange
	}
	values, err := r.conn.Sheets.ReadRange(ctx, res.ID, rng)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("read range: %w", err)
	}

	rows := make([]connector.SheetRow, len(values))
	for i, v := range values {
		rows[i] = connector.SheetRow{Values: v}
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Read %d rows from %q.", len(rows), res.Name), rows), nil
}

func (r *Router) updateSheet(ctx context.Context, req *Request, p intent.SheetParams) (intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.Title, ExplicitID: p.SpreadsheetID}
	if isEmpty(ref) {
		return intent.Reply(req.Intent.Action, "Which spreadsheet? Please tell me its name."), nil
	}

	res, err := r.docs.Resolve(ctx, ref, resolver.GoogleSheetType)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if !res.Found {
		return intent.Reply(req.Intent.Action, fmt.Sprintf("❌ Could not find spreadsheet %q.", res.Name)), nil
	}
	if p.Range == "" || len(p.Values) == 0 {
		return intent.Reply(req.Intent.Action, "Please provide the range and values to update."), nil
	}
	if r.conn.Sheets == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	if err := r.conn.Sheets.UpdateRange(ctx, res.ID, p.Range, p.Values); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("update range: %w", err)
	}
	return intent.Reply(req.Intent.Action, fmt.Sprintf("✅ Updated %q successfully.", res.Name)), nil
}
