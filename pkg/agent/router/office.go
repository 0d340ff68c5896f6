package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/resolver"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// officeTarget resolve um arquivo do OneDrive pelo token do usuário
func (r *Router) officeTarget(ctx context.Context, req *Request, ref resolver.NameReference, kind string) (string, resolver.Resolution, *intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return "", resolver.Resolution{}, nil, err
	}
	if isEmpty(ref) {
		resp := intent.Reply(req.Intent.Action, fmt.Sprintf("Which %s? Please tell me its name.", kind))
		return token, resolver.Resolution{}, &resp, nil
	}

	res, err := r.oneDrive(token).Resolve(ctx, ref, resolver.OfficeFileType)
	if err != nil {
		return token, res, nil, err
	}
	if !res.Found {
		resp := intent.Reply(req.Intent.Action, fmt.Sprintf("❌ Could not find %s %q.", kind, res.Name))
		return token, res, &resp, nil
	}
	if r.conn.Office == nil {
		return token, res, nil, connector.ErrNotConfigured
	}
	return token, res, nil, nil
}

func (r *Router) createWordDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return intent.Reply(req.Intent.Action, "Please provide a title."), nil
	}
	if r.conn.Office == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	item, err := r.conn.Office.CreateWordDoc(ctx, token, title)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create word doc: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Word document created: %q", item.Name), item), nil
}

func (r *Router) readWordDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.Title, ExplicitID: p.DocumentID}
	token, res, stop, err := r.officeTarget(ctx, req, ref, "Word doc")
	if stop != nil || err != nil {
		return deref(stop), err
	}

	item, err := r.conn.Office.OpenWordDoc(ctx, token, res.ID)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("open word doc: %w", err)
	}
	name := res.Name
	if item.Name != "" {
		name = item.Name
	}
	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Opened %q. Content preview is limited for Word Online.", name), item), nil
}

func (r *Router) createExcelSheet(ctx context.Context, req *Request, p intent.SheetParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return intent.Reply(req.Intent.Action, "Please provide a title."), nil
	}
	if r.conn.Office == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	item, err := r.conn.Office.CreateWorkbook(ctx, token, title)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create workbook: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Excel workbook created: %q", item.Name), item), nil
}

func (r *Router) readExcelSheet(ctx context.Context, req *Request, p intent.SheetParams) (intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.Title, ExplicitID: p.SpreadsheetID}
	token, res, stop, err := r.officeTarget(ctx, req, ref, "Excel file")
	if stop != nil || err != nil {
		return deref(stop), err
	}

	rows, err := r.conn.Office.ReadWorksheet(ctx, token, res.ID)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("read worksheet: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Read %d rows from %q.", len(rows), res.Name), rows), nil
}

func (r *Router) updateExcelSheet(ctx context.Context, req *Request, p intent.SheetParams) (intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.Title, ExplicitID: p.SpreadsheetID}
	token, res, stop, err := r.officeTarget(ctx, req, ref, "Excel file")
	if stop != nil || err != nil {
		return deref(stop), err
	}

	if len(p.Values) == 0 || len(p.Values[0]) == 0 {
		return intent.Reply(req.Intent.Action, "Please provide values to append (row data)."), nil
	}

	if err := r.conn.Office.AppendWorksheetRow(ctx, token, res.ID, p.Values[0]); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("append worksheet row: %w", err)
	}
	return intent.Reply(req.Intent.Action, fmt.Sprintf("✅ Added row to %q.", res.Name)), nil
}
