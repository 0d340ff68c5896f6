package connector

import "time"

// Email representa o resumo de uma mensagem do Gmail ou do Outlook
type Email struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId,omitempty"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	Snippet  string `json:"snippet"`
	Date     string `json:"date"`
}

// EmailQuery filtra a listagem da caixa de entrada
type EmailQuery struct {
	Limit  int
	Search string
	// Date restringe a um dia, no formato YYYY-MM-DD
	Date string
}

// OutgoingEmail representa uma mensagem em texto puro a enviar.
// To aceita endereços separados por vírgula.
type OutgoingEmail struct {
	To      string
	Subject string
	Body    string
}

// File representa um item da listagem do Drive ou do OneDrive
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         string `json:"size,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
}

// FileRef é o resultado mínimo de uma busca por nome
type FileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Doc representa os metadados de um documento criado
type Doc struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
}

// DocContent representa o texto de um documento
type DocContent struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content"`
}

// Spreadsheet representa uma planilha recém-criada
type Spreadsheet struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
}

// SheetRow representa uma linha lida de uma planilha
type SheetRow struct {
	RowNumber int      `json:"rowNumber,omitempty"`
	Values    []string `json:"values"`
}

// EventInput descreve o evento a criar
type EventInput struct {
	Subject     string
	Description string
	Start       time.Time
	End         time.Time
}

// Event representa um evento de calendário devolvido pelo provedor
type Event struct {
	ExternalID  string    `json:"eventId,omitempty"`
	Link        string    `json:"meetLink,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Note representa uma nota do Keep
type Note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Course representa uma turma do Classroom
type Course struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Section        string `json:"section,omitempty"`
	Description    string `json:"description,omitempty"`
	Room           string `json:"room,omitempty"`
	EnrollmentCode string `json:"enrollmentCode,omitempty"`
	AlternateLink  string `json:"alternateLink,omitempty"`
}

// CourseInput descreve a turma a criar
type CourseInput struct {
	Name        string
	Section     string
	Description string
	Room        string
}

// Assignment representa uma atividade do Classroom
type Assignment struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	State    string `json:"state,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
	WorkType string `json:"workType,omitempty"`
	Link     string `json:"alternateLink,omitempty"`
}

// Student representa um aluno da turma
type Student struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

// DriveItem representa um arquivo do OneDrive criado ou aberto pelo Graph
type DriveItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"webUrl,omitempty"`
}

// TeamsMessage representa uma mensagem de canal
type TeamsMessage struct {
	ID              string `json:"id"`
	Subject         string `json:"subject,omitempty"`
	Body            string `json:"body"`
	FromName        string `json:"fromName"`
	FromEmail       string `json:"fromEmail,omitempty"`
	CreatedDateTime string `json:"createdDateTime"`
	WebURL          string `json:"webUrl,omitempty"`
}

// TeamsChannel representa um canal de uma equipe
type TeamsChannel struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description,omitempty"`
	MembershipType string `json:"membershipType"`
	WebURL         string `json:"webUrl,omitempty"`
}

// Order representa o resumo de um pedido do Shopify
type Order struct {
	ID                int64  `json:"id"`
	OrderNumber       int64  `json:"order_number"`
	CustomerName      string `json:"customer_name"`
	CustomerEmail     string `json:"customer_email,omitempty"`
	TotalPrice        string `json:"total_price"`
	CreatedAt         string `json:"created_at"`
	FinancialStatus   string `json:"financial_status"`
	FulfillmentStatus string `json:"fulfillment_status,omitempty"`
}

// OrderQuery filtra a listagem de pedidos
type OrderQuery struct {
	Limit int
	// Status: any, open, closed ou cancelled; vazio equivale a any
	Status       string
	CreatedAtMin string
	CreatedAtMax string
}

// TelegramMessage representa uma mensagem recebida ou enviada pelo bot
type TelegramMessage struct {
	MessageID int64  `json:"message_id"`
	ChatID    int64  `json:"chat_id"`
	ChatTitle string `json:"chat_title,omitempty"`
	From      string `json:"from,omitempty"`
	Text      string `json:"text"`
	Date      int64  `json:"date"`
}

// TelegramBot identifica o bot dono do token
type TelegramBot struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"first_name"`
}

// ShopInfo identifica a loja das credenciais
type ShopInfo struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Email  string `json:"email,omitempty"`
}
