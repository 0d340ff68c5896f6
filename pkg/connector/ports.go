// Package connector declara os contratos dos serviços externos usados pelo
// agente. Os adaptadores em pkg/connectors os implementam e o roteador só
// conhece estas interfaces.
package connector

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotAuthenticated indica token do provedor ausente, expirado ou recusado
	ErrNotAuthenticated = errors.New("provider not authenticated")
	// ErrNotConfigured indica que não há adaptador para o provedor
	ErrNotConfigured = errors.New("provider not configured")
)

// Serviços Google se autenticam com o token do servidor.

type Gmail interface {
	ListEmails(ctx context.Context, q EmailQuery) ([]Email, error)
	SendEmail(ctx context.Context, msg OutgoingEmail) error
}

type Drive interface {
	ListFiles(ctx context.Context, limit int) ([]File, error)
	// FindFiles busca arquivos pelo nome, opcionalmente filtrando por tipo MIME
	FindFiles(ctx context.Context, name, mimeType string) ([]FileRef, error)
}

type Docs interface {
	CreateDoc(ctx context.Context, title, content string) (Doc, error)
	ReadDoc(ctx context.Context, documentID string) (DocContent, error)
	AppendText(ctx context.Context, documentID, text string) error
	ReplaceText(ctx context.Context, documentID, find, replace string) error
	ClearDoc(ctx context.Context, documentID string) error
}

type Sheets interface {
	CreateSpreadsheet(ctx context.Context, title, sheetName string) (Spreadsheet, error)
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
	UpdateRange(ctx context.Context, spreadsheetID, rng string, values [][]string) error
}

type Calendar interface {
	CreateEvent(ctx context.Context, in EventInput) (Event, error)
	UpdateEvent(ctx context.Context, externalID string, start, end time.Time) error
	DeleteEvent(ctx context.Context, externalID string) error
	ListEvents(ctx context.Context, limit int) ([]Event, error)
}

type Keep interface {
	ListNotes(ctx context.Context, limit int) ([]Note, error)
	CreateNote(ctx context.Context, title, body string) (Note, error)
}

type Classroom interface {
	ListCourses(ctx context.Context, limit int) ([]Course, error)
	FindCourses(ctx context.Context, name string) ([]FileRef, error)
	ListAssignments(ctx context.Context, courseID string, limit int) ([]Assignment, error)
	ListStudents(ctx context.Context, courseID string) ([]Student, error)
	CreateCourse(ctx context.Context, in CourseInput) (Course, error)
}

// Serviços do Microsoft Graph recebem o token do usuário a cada chamada.

type Outlook interface {
	ListEmails(ctx context.Context, token string, limit int, search string) ([]Email, error)
	SendEmail(ctx context.Context, token string, msg OutgoingEmail) error
	CreateEvent(ctx context.Context, token string, in EventInput) (Event, error)
}

type OneDrive interface {
	ListFiles(ctx context.Context, token string, limit int) ([]File, error)
	FindFiles(ctx context.Context, token, name string) ([]FileRef, error)
}

type Office interface {
	CreateWordDoc(ctx context.Context, token, name string) (DriveItem, error)
	OpenWordDoc(ctx context.Context, token, itemID string) (DriveItem, error)
	CreateWorkbook(ctx context.Context, token, name string) (DriveItem, error)
	ReadWorksheet(ctx context.Context, token, itemID string) ([]SheetRow, error)
	AppendWorksheetRow(ctx context.Context, token, itemID string, values []string) error
}

type Teams interface {
	ListMessages(ctx context.Context, token string, limit int) ([]TeamsMessage, error)
	ListChannels(ctx context.Context, token string, limit int) ([]TeamsChannel, error)
}

type Shopify interface {
	ListOrders(ctx context.Context, creds ShopifyConfig, q OrderQuery) ([]Order, error)
	Shop(ctx context.Context, creds ShopifyConfig) (ShopInfo, error)
}

type Telegram interface {
	GetMe(ctx context.Context, token string) (TelegramBot, error)
	GetRecentMessages(ctx context.Context, token string, limit int) ([]TelegramMessage, error)
	SendMessage(ctx context.Context, token, chatID, text string) (TelegramMessage, error)
	RemoveMember(ctx context.Context, token, chatID string, userID int64) error
	PinMessage(ctx context.Context, token, chatID string, messageID int64) error
	RenameChat(ctx context.Context, token, chatID, title string) error
}

// NLU completa um prompt; a saída é texto não confiável
type NLU interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Set agrupa os adaptadores; membros nil são tratados como não configurados
type Set struct {
	Gmail     Gmail
	Drive     Drive
	Docs      Docs
	Sheets    Sheets
	Calendar  Calendar
	Keep      Keep
	Classroom Classroom
	Outlook   Outlook
	OneDrive  OneDrive
	Office    Office
	Teams     Teams
	Shopify   Shopify
	Telegram  Telegram
}
