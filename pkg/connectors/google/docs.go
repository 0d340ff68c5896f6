package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// Docs implementa connector.Docs
type Docs struct {
	api *rest.Client
}

type document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Body       struct {
		Content []struct {
			EndIndex  int `json:"endIndex"`
			Paragraph *struct {
				Elements []struct {
					TextRun *struct {
						Content string `json:"content"`
					} `json:"textRun"`
				} `json:"elements"`
			} `json:"paragraph"`
		} `json:"content"`
	} `json:"body"`
}

// text concatena o conteúdo dos parágrafos
func (d document) text() string {
	var b strings.Builder
	for _, c := range d.Body.Content {
		if c.Paragraph == nil {
			continue
		}
		for _, e := range c.Paragraph.Elements {
			if e.TextRun != nil {
				b.WriteString(e.TextRun.Content)
			}
		}
	}
	return b.String()
}

func (d document) endIndex() int {
	end := 1
	for _, c := range d.Body.Content {
		if c.EndIndex > end {
			end = c.EndIndex
		}
	}
	return end
}

func documentURL(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

func (d *Docs) batchUpdate(ctx context.Context, id string, requests ...map[string]any) error {
	return d.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/documents/" + url.PathEscape(id) + ":batchUpdate",
		Body:   map[string]any{"requests": requests},
	}, nil)
}

func (d *Docs) get(ctx context.Context, id string) (document, error) {
	var doc document
	err := d.api.Do(ctx, rest.Request{Path: "/documents/" + url.PathEscape(id)}, &doc)
	return doc, err
}

// CreateDoc cria o documento e insere o conteúdo inicial, se houver
func (d *Docs) CreateDoc(ctx context.Context, title, content string) (connector.Doc, error) {
	var created document
	err := d.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/documents",
		Body:   map[string]string{"title": title},
	}, &created)
	if err != nil {
		return connector.Doc{}, fmt.Errorf("erro ao criar documento: %w", err)
	}

	if content != "" {
		err := d.batchUpdate(ctx, created.DocumentID, map[string]any{
			"insertText": map[string]any{"location": map[string]int{"index": 1}, "text": content},
		})
		if err != nil {
			return connector.Doc{}, fmt.Errorf("erro ao inserir conteúdo: %w", err)
		}
	}

	return connector.Doc{
		DocumentID: created.DocumentID,
		Title:      created.Title,
		URL:        documentURL(created.DocumentID),
	}, nil
}

// ReadDoc devolve o texto do documento
func (d *Docs) ReadDoc(ctx context.Context, documentID string) (connector.DocContent, error) {
	doc, err := d.get(ctx, documentID)
	if err != nil {
		return connector.DocContent{}, fmt.Errorf("erro ao ler documento: %w", err)
	}
	return connector.DocContent{DocumentID: doc.DocumentID, Title: doc.Title, Content: doc.text()}, nil
}

// AppendText insere o texto no fim do corpo
func (d *Docs) AppendText(ctx context.Context, documentID, text string) error {
	err := d.batchUpdate(ctx, documentID, map[string]any{
		"insertText": map[string]any{"endOfSegmentLocation": map[string]any{}, "text": "\n" + text},
	})
	if err != nil {
		return fmt.Errorf("erro ao adicionar texto: %w", err)
	}
	return nil
}

// ReplaceText substitui todas as ocorrências; replace vazio apaga o trecho
func (d *Docs) ReplaceText(ctx context.Context, documentID, find, replace string) error {
	err := d.batchUpdate(ctx, documentID, map[string]any{
		"replaceAllText": map[string]any{
			"containsText": map[string]any{"text": find, "matchCase": true},
			"replaceText":  replace,
		},
	})
	if err != nil {
		return fmt.Errorf("erro ao substituir texto: %w", err)
	}
	return nil
}

// ClearDoc remove todo o conteúdo do corpo
func (d *Docs) ClearDoc(ctx context.Context, documentID string) error {
	doc, err := d.get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("erro ao ler documento: %w", err)
	}

	// o último caractere do corpo é uma quebra de linha que não pode ser apagada
	end := doc.endIndex() - 1
	if end <= 1 {
		return nil
	}

	err = d.batchUpdate(ctx, documentID, map[string]any{
		"deleteContentRange": map[string]any{"range": map[string]int{"startIndex": 1, "endIndex": end}},
	})
	if err != nil {
		return fmt.Errorf("erro ao limpar documento: %w", err)
	}
	return nil
}
