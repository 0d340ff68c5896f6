package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// MaxLimit é o teto de itens pedidos a qualquer conector
const MaxLimit = 200

var (
	ErrEmptyResponse = errors.New("empty NLU response")
	ErrInvalidShape  = errors.New("NLU response is not an intent object")
)

// DecodeNLUResponse valida a resposta do NLU antes de confiar em qualquer campo
func DecodeNLUResponse(raw string) (Intent, error) {
	text := stripFences(raw)
	if text == "" {
		return Intent{}, ErrEmptyResponse
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return Intent{}, fmt.Errorf("parse NLU JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
			return Intent{}, fmt.Errorf("parse repaired NLU JSON: %w", err)
		}
	}
	if doc == nil {
		return Intent{}, ErrInvalidShape
	}

	tag, ok := doc["action"].(string)
	if !ok {
		return Intent{}, ErrInvalidShape
	}

	params, _ := doc["parameters"].(map[string]any)
	natural, _ := doc["naturalResponse"].(string)
	if strings.TrimSpace(natural) == "" {
		natural = "Okay."
	}
	usesContext, _ := doc["usesContext"].(bool)

	return Intent{
		Action:          ParseAction(tag),
		Params:          SanitizeParams(params),
		UsesContext:     usesContext,
		NaturalResponse: natural,
	}, nil
}

// SanitizeParams limita "limit" a MaxLimit e torna "values" uma matriz de strings
func SanitizeParams(in map[string]any) Params {
	out := make(Params, len(in))
	for k, v := range in {
		out[k] = v
	}

	if raw, ok := out["limit"]; ok {
		if limit, ok := clampLimit(raw); ok {
			out["limit"] = limit
		} else {
			delete(out, "limit")
		}
	}

	if raw, ok := out["values"]; ok {
		out["values"] = NormalizeValues(raw)
	}

	return out
}

// ClampLimit aplica o teto MaxLimit; valores não positivos usam def
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func clampLimit(raw any) (int, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || f < 1 {
		return 0, false
	}
	if f > MaxLimit {
		return MaxLimit, true
	}
	return int(f), true
}

// NormalizeValues converte qualquer valor em linhas de células string.
// Não-array vira vazio, linha não-array vira linha vazia, null vira "".
func NormalizeValues(raw any) [][]string {
	rows, ok := raw.([]any)
	if !ok {
		if typed, ok := raw.([][]string); ok {
			return typed
		}
		return [][]string{}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			out = append(out, []string{})
			continue
		}
		line := make([]string, len(cells))
		for i, cell := range cells {
			line[i] = cellString(cell)
		}
		out = append(out, line)
	}
	return out
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// stripFences remove cercas de código e texto fora do objeto JSON
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
