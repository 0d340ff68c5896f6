package microsoft

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

type driveItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	LastModifiedDateTime string `json:"lastModifiedDateTime"`
	Size                 int64  `json:"size"`
	WebURL               string `json:"webUrl"`
	File                 *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
}

func (d driveItem) toFile() connector.File {
	f := connector.File{
		ID:           d.ID,
		Name:         d.Name,
		ModifiedTime: d.LastModifiedDateTime,
		WebViewLink:  d.WebURL,
	}
	if d.Size > 0 {
		f.Size = strconv.FormatInt(d.Size, 10)
	}
	if d.File != nil {
		f.MimeType = d.File.MimeType
	}
	return f
}

func (d driveItem) toItem() connector.DriveItem {
	return connector.DriveItem{ID: d.ID, Name: d.Name, WebURL: d.WebURL}
}

// ListFiles lista os itens da raiz do OneDrive, mais recentes primeiro
func (g *Graph) ListFiles(ctx context.Context, token string, limit int) ([]connector.File, error) {
	items, err := list[driveItem](ctx, g, token, rest.Request{
		Path: "/me/drive/root/children",
		Query: url.Values{
			"$top":     {strconv.Itoa(limit)},
			"$orderby": {"lastModifiedDateTime desc"},
		},
	})
	if err != nil {
		return nil, wrap("listar arquivos do OneDrive", err)
	}

	files := make([]connector.File, 0, len(items))
	for _, it := range items {
		files = append(files, it.toFile())
	}
	return files, nil
}

// FindFiles busca arquivos pelo nome em todo o OneDrive
func (g *Graph) FindFiles(ctx context.Context, token, name string) ([]connector.FileRef, error) {
	term := strings.ReplaceAll(strings.TrimSpace(name), "'", "''")
	items, err := list[driveItem](ctx, g, token, rest.Request{
		Path:  "/me/drive/root/search(q='" + url.PathEscape(term) + "')",
		Query: url.Values{"$top": {"10"}, "$select": {"id,name"}},
	})
	if err != nil {
		return nil, wrap("buscar arquivo no OneDrive", err)
	}

	refs := make([]connector.FileRef, 0, len(items))
	for _, it := range items {
		refs = append(refs, connector.FileRef{ID: it.ID, Name: it.Name})
	}
	return refs, nil
}
