package google

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// Drive implementa connector.Drive
type Drive struct {
	api *rest.Client
}

type driveList struct {
	Files []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		MimeType     string `json:"mimeType"`
		ModifiedTime string `json:"modifiedTime"`
		Size         string `json:"size"`
		WebViewLink  string `json:"webViewLink"`
	} `json:"files"`
}

// ListFiles lista os arquivos modificados mais recentemente
func (d *Drive) ListFiles(ctx context.Context, limit int) ([]connector.File, error) {
	var list driveList
	err := d.api.Do(ctx, rest.Request{
		Path: "/files",
		Query: url.Values{
			"pageSize": {strconv.Itoa(limit)},
			"fields":   {"files(id, name, mimeType, modifiedTime, size, webViewLink)"},
			"orderBy":  {"modifiedTime desc"},
		},
	}, &list)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar arquivos: %w", err)
	}

	files := make([]connector.File, 0, len(list.Files))
	for _, f := range list.Files {
		name := f.Name
		if name == "" {
			name = "Untitled"
		}
		files = append(files, connector.File{
			ID:           f.ID,
			Name:         name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
			WebViewLink:  f.WebViewLink,
		})
	}
	return files, nil
}

// FindFiles busca arquivos não excluídos cujo nome contém name
func (d *Drive) FindFiles(ctx context.Context, name, mimeType string) ([]connector.FileRef, error) {
	var list driveList
	err := d.api.Do(ctx, rest.Request{
		Path: "/files",
		Query: url.Values{
			"q":        {FileQuery(name, mimeType)},
			"pageSize": {"10"},
			"fields":   {"files(id, name)"},
			"orderBy":  {"modifiedTime desc"},
		},
	}, &list)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar arquivo %q: %w", name, err)
	}

	refs := make([]connector.FileRef, 0, len(list.Files))
	for _, f := range list.Files {
		refs = append(refs, connector.FileRef{ID: f.ID, Name: f.Name})
	}
	return refs, nil
}

// FileQuery monta o filtro "q" do Drive
func FileQuery(name, mimeType string) string {
	q := fmt.Sprintf("name contains '%s' and trashed = false", escapeQuery(name))
	if mimeType != "" {
		q += fmt.Sprintf(" and mimeType = '%s'", escapeQuery(mimeType))
	}
	return q
}

func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
