package microsoft

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// createEmpty grava um arquivo vazio na raiz do OneDrive
func (g *Graph) createEmpty(ctx context.Context, token, filename string) (connector.DriveItem, error) {
	var item driveItem
	err := g.do(ctx, token, rest.Request{
		Method:      http.MethodPut,
		Path:        "/me/drive/root:/" + url.PathEscape(filename) + ":/content",
		RawBody:     []byte{},
		ContentType: "application/octet-stream",
	}, &item)
	if err != nil {
		return connector.DriveItem{}, err
	}
	return item.toItem(), nil
}

func itemPath(itemID string) string {
	return "/me/drive/items/" + url.PathEscape(itemID)
}

// CreateWordDoc cria um .docx vazio
func (g *Graph) CreateWordDoc(ctx context.Context, token, name string) (connector.DriveItem, error) {
	item, err := g.createEmpty(ctx, token, withExtension(name, ".docx"))
	if err != nil {
		return connector.DriveItem{}, wrap("criar documento Word", err)
	}
	return item, nil
}

// OpenWordDoc devolve os metadados e o link do documento; o Graph não expõe o texto
func (g *Graph) OpenWordDoc(ctx context.Context, token, itemID string) (connector.DriveItem, error) {
	var item driveItem
	err := g.do(ctx, token, rest.Request{
		Path:  itemPath(itemID),
		Query: url.Values{"$select": {"id,name,webUrl"}},
	}, &item)
	if err != nil {
		return connector.DriveItem{}, wrap("abrir documento Word", err)
	}
	return item.toItem(), nil
}

// CreateWorkbook cria um .xlsx vazio
func (g *Graph) CreateWorkbook(ctx context.Context, token, name string) (connector.DriveItem, error) {
	item, err := g.createEmpty(ctx, token, withExtension(name, ".xlsx"))
	if err != nil {
		return connector.DriveItem{}, wrap("criar pasta de trabalho", err)
	}
	return item, nil
}

// ReadWorksheet lê o intervalo usado da planilha ativa
func (g *Graph) ReadWorksheet(ctx context.Context, token, itemID string) ([]connector.SheetRow, error) {
	var rng struct {
		Values [][]any `json:"values"`
	}
	err := g.do(ctx, token, rest.Request{Path: itemPath(itemID) + "/workbook/worksheets/Active/usedRange"}, &rng)
	if err != nil {
		return nil, wrap("ler planilha do Excel", err)
	}

	rows := make([]connector.SheetRow, 0, len(rng.Values))
	for i, row := range rng.Values {
		values := make([]string, len(row))
		for j, cell := range row {
			values[j] = cellString(cell)
		}
		rows = append(rows, connector.SheetRow{RowNumber: i + 1, Values: values})
	}
	return rows, nil
}

// AppendWorksheetRow adiciona a linha na primeira tabela da planilha ativa,
// criando uma tabela quando não existe nenhuma
func (g *Graph) AppendWorksheetRow(ctx context.Context, token, itemID string, values []string) error {
	base := itemPath(itemID) + "/workbook"

	tables, err := list[struct {
		ID string `json:"id"`
	}](ctx, g, token, rest.Request{Path: base + "/worksheets/Active/tables"})
	if err != nil {
		return wrap("listar tabelas do Excel", err)
	}

	var tableID string
	if len(tables) > 0 {
		tableID = tables[0].ID
	} else {
		var created struct {
			ID string `json:"id"`
		}
		err := g.do(ctx, token, rest.Request{
			Method: http.MethodPost,
			Path:   base + "/worksheets/Active/tables/add",
			Body:   map[string]any{"address": headerAddress(len(values)), "hasHeaders": true},
		}, &created)
		if err != nil {
			return wrap("criar tabela no Excel", err)
		}
		tableID = created.ID
	}

	err = g.do(ctx, token, rest.Request{
		Method: http.MethodPost,
		Path:   base + "/tables/" + url.PathEscape(tableID) + "/rows",
		Body:   map[string]any{"values": [][]string{values}},
	}, nil)
	if err != nil {
		return wrap("adicionar linha no Excel", err)
	}
	return nil
}

// headerAddress devolve o intervalo da primeira linha com n colunas (mínimo 1)
func headerAddress(n int) string {
	if n < 1 {
		n = 1
	}
	return "A1:" + columnName(n) + "1"
}

// columnName converte 1 → A, 27 → AA
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
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
