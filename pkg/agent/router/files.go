package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

func (r *Router) fetchFiles(ctx context.Context, req *Request, p intent.FileParams) (intent.ActionResponse, error) {
	if r.conn.Drive == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	files, err := r.conn.Drive.ListFiles(ctx, intent.ClampLimit(p.Limit, 5))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list drive: %w", err)
	}
	files = filterFiles(files, p.Search)
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Fetched %d files from Drive.", len(files)), files), nil
}

func (r *Router) fetchOneDriveFiles(ctx context.Context, req *Request, p intent.FileParams) (intent.ActionResponse, error) {
	token, err := r.microsoftToken(req)
	if err != nil {
		return intent.ActionResponse{}, err
	}
	if r.conn.OneDrive == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	files, err := r.conn.OneDrive.ListFiles(ctx, token, intent.ClampLimit(p.Limit, 5))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list onedrive: %w", err)
	}
	files = filterFiles(files, p.Search)
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d OneDrive files.", len(files)), files), nil
}

// filterFiles mantém os arquivos cujo nome contém o termo
func filterFiles(files []connector.File, search string) []connector.File {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return files
	}
	out := make([]connector.File, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), term) {
			out = append(out, f)
		}
	}
	return out
}
