package intent

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Params é o mapa plano de parâmetros de uma intenção
type Params map[string]any

// Decode converte os parâmetros no registro tipado da ação.
// A entrada é fracamente tipada: "5" e 5 decodificam no mesmo int.
func Decode[T any](p Params) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(map[string]any(p)); err != nil {
		return out, fmt.Errorf("decode parameters: %w", err)
	}
	return out, nil
}

// MailParams cobre fetch/send de Gmail e Outlook
type MailParams struct {
	Limit   int    `mapstructure:"limit"`
	Search  string `mapstructure:"search"`
	Filter  string `mapstructure:"filter"`
	Date    string `mapstructure:"date"`
	To      string `mapstructure:"to"`
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
}

// FileParams cobre listagens de Drive e OneDrive
type FileParams struct {
	Limit  int    `mapstructure:"limit"`
	Search string `mapstructure:"search"`
}

// DocParams cobre Google Docs e Word
type DocParams struct {
	DocumentID string `mapstructure:"documentId"`
	Title      string `mapstructure:"title"`
	Content    string `mapstructure:"content"`
	Text       string `mapstructure:"text"`
	FindText   string `mapstructure:"findText"`
	// ReplaceText é ponteiro: "" é uma substituição válida, nil é ausência
	ReplaceText *string `mapstructure:"replaceText"`
}

// SheetParams cobre Google Sheets e Excel
type SheetParams struct {
	SpreadsheetID string     `mapstructure:"spreadsheetId"`
	Title         string     `mapstructure:"title"`
	SheetName     string     `mapstructure:"sheetName"`
	Range         string     `mapstructure:"range"`
	Values        [][]string `mapstructure:"values"`
}

// MeetParams cobre Meet e eventos do Outlook
type MeetParams struct {
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
	Date    string `mapstructure:"date"`
	Time    string `mapstructure:"time"`
	// FromTime identifica a reunião existente num reagendamento
	FromTime string `mapstructure:"fromTime"`
	Limit    int    `mapstructure:"limit"`
}

// NoteParams cobre Google Keep
type NoteParams struct {
	Limit   int    `mapstructure:"limit"`
	Title   string `mapstructure:"title"`
	Content string `mapstructure:"content"`
}

// ClassroomParams cobre Google Classroom
type ClassroomParams struct {
	Limit       int    `mapstructure:"limit"`
	CourseID    string `mapstructure:"courseId"`
	CourseName  string `mapstructure:"courseName"`
	StudentName string `mapstructure:"studentName"`
	Name        string `mapstructure:"name"`
	Title       string `mapstructure:"title"`
	Section     string `mapstructure:"section"`
	Description string `mapstructure:"description"`
	Room        string `mapstructure:"room"`
}

// OrderParams cobre Shopify
type OrderParams struct {
	Limit  int    `mapstructure:"limit"`
	Status string `mapstructure:"status"`
	Date   string `mapstructure:"date"`
}

// TeamsParams cobre Microsoft Teams
type TeamsParams struct {
	Limit  int    `mapstructure:"limit"`
	Search string `mapstructure:"search"`
	Filter string `mapstructure:"filter"`
}

// TelegramParams cobre o bot do Telegram. Action é o discriminador de
// manage_telegram_group (kick, pin, title).
type TelegramParams struct {
	Limit     int    `mapstructure:"limit"`
	ChatID    string `mapstructure:"chatId"`
	Text      string `mapstructure:"text"`
	Action    string `mapstructure:"action"`
	UserID    int64  `mapstructure:"userId"`
	MessageID int64  `mapstructure:"messageId"`
	Value     string `mapstructure:"value"`
}
