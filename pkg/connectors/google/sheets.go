package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// Sheets implementa connector.Sheets
type Sheets struct {
	api *rest.Client
}

// CreateSpreadsheet cria a planilha; sheetName nomeia a primeira aba
func (s *Sheets) CreateSpreadsheet(ctx context.Context, title, sheetName string) (connector.Spreadsheet, error) {
	body := map[string]any{"properties": map[string]string{"title": title}}
	if sheetName != "" {
		body["sheets"] = []map[string]any{{"properties": map[string]string{"title": sheetName}}}
	}

	var out connector.Spreadsheet
	err := s.api.Do(ctx, rest.Request{Method: http.MethodPost, Path: "/spreadsheets", Body: body}, &out)
	if err != nil {
		return connector.Spreadsheet{}, fmt.Errorf("erro ao criar planilha: %w", err)
	}
	return out, nil
}

// ReadRange lê um intervalo em notação A1
func (s *Sheets) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	var out struct {
		Values [][]any `json:"values"`
	}
	err := s.api.Do(ctx, rest.Request{
		Path: "/spreadsheets/" + url.PathEscape(spreadsheetID) + "/values/" + url.PathEscape(rng),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler intervalo %s: %w", rng, err)
	}

	rows := make([][]string, len(out.Values))
	for i, row := range out.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cellString(cell)
		}
	}
	return rows, nil
}

// UpdateRange grava valores interpretados como se digitados pelo usuário
func (s *Sheets) UpdateRange(ctx context.Context, spreadsheetID, rng string, values [][]string) error {
	err := s.api.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/spreadsheets/" + url.PathEscape(spreadsheetID) + "/values/" + url.PathEscape(rng),
		Query:  url.Values{"valueInputOption": {"USER_ENTERED"}},
		Body: map[string]any{
			"range":          rng,
			"majorDimension": "ROWS",
			"values":         values,
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("erro ao atualizar intervalo %s: %w", rng, err)
	}
	return nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
