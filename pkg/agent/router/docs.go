package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/resolver"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

const askForDocument = "Which document? Please tell me its title."

// resolveDoc resolve o documento antes de qualquer chamada ao Docs.
// Uma resposta não vazia encerra o handler.
func (r *Router) resolveDoc(ctx context.Context, req *Request, p intent.DocParams) (resolver.Resolution, *intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.Title, ExplicitID: p.DocumentID}
	if isEmpty(ref) {
		resp := intent.Reply(req.Intent.Action, askForDocument)
		return resolver.Resolution{}, &resp, nil
	}

	res, err := r.docs.Resolve(ctx, ref, resolver.GoogleDocType)
	if err != nil {
		return res, nil, err
	}
	if !res.Found {
		resp := intent.Reply(req.Intent.Action, fmt.Sprintf("❌ Could not find doc %q.", res.Name))
		return res, &resp, nil
	}
	if r.conn.Docs == nil {
		return res, nil, connector.ErrNotConfigured
	}
	return res, nil, nil
}

func (r *Router) createDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return intent.Reply(req.Intent.Action, "Please provide a title."), nil
	}
	if r.conn.Docs == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	doc, err := r.conn.Docs.CreateDoc(ctx, title, p.Content)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create doc: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Doc created: %s", doc.Title), doc), nil
}

func (r *Router) readDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	res, stop, err := r.resolveDoc(ctx, req, p)
	if stop != nil || err != nil {
		return deref(stop), err
	}

	content, err := r.conn.Docs.ReadDoc(ctx, res.ID)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("read doc: %w", err)
	}
	content.DocumentID = res.ID
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Read content from %q.", res.Name), content), nil
}

func (r *Router) appendDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	res, stop, err := r.resolveDoc(ctx, req, p)
	if stop != nil || err != nil {
		return deref(stop), err
	}

	text := p.Text
	if text == "" {
		text = p.Content
	}
	if text == "" {
		return intent.Reply(req.Intent.Action, "No text provided."), nil
	}

	if err := r.conn.Docs.AppendText(ctx, res.ID, text); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("append doc: %w", err)
	}
	return intent.Reply(req.Intent.Action, fmt.Sprintf("✅ Added text to %q.", res.Name)), nil
}

func (r *Router) replaceDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	res, stop, err := r.resolveDoc(ctx, req, p)
	if stop != nil || err != nil {
		return deref(stop), err
	}

	// replaceText vazio é válido: apaga o trecho
	if p.FindText == "" || p.ReplaceText == nil {
		return intent.Reply(req.Intent.Action, "Please tell me the text to find and what to replace it with."), nil
	}

	if err := r.conn.Docs.ReplaceText(ctx, res.ID, p.FindText, *p.ReplaceText); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("replace doc: %w", err)
	}
	return intent.Reply(req.Intent.Action, "✅ Text replaced."), nil
}

func (r *Router) clearDoc(ctx context.Context, req *Request, p intent.DocParams) (intent.ActionResponse, error) {
	res, stop, err := r.resolveDoc(ctx, req, p)
	if stop != nil || err != nil {
		return deref(stop), err
	}

	if err := r.conn.Docs.ClearDoc(ctx, res.ID); err != nil {
		return intent.ActionResponse{}, fmt.Errorf("clear doc: %w", err)
	}
	return intent.Reply(req.Intent.Action, fmt.Sprintf("✅ Cleared content of %q.", res.Name)), nil
}

func deref(resp *intent.ActionResponse) intent.ActionResponse {
	if resp == nil {
		return intent.ActionResponse{}
	}
	return *resp
}
