package intent

// Action identifica a operação que o usuário pediu
type Action string

const (
	ActionFetchEmails        Action = "fetch_emails"
	ActionSendEmail          Action = "send_email"
	ActionFetchOutlookEmails Action = "fetch_outlook_emails"
	ActionSendOutlookEmail   Action = "send_outlook_email"

	ActionFetchFiles         Action = "fetch_files"
	ActionFetchOneDriveFiles Action = "fetch_onedrive_files"

	ActionCreateDoc  Action = "create_doc"
	ActionReadDoc    Action = "read_doc"
	ActionAppendDoc  Action = "append_doc"
	ActionReplaceDoc Action = "replace_doc"
	ActionClearDoc   Action = "clear_doc"

	ActionCreateSheet Action = "create_sheet"
	ActionReadSheet   Action = "read_sheet"
	ActionUpdateSheet Action = "update_sheet"

	ActionCreateWordDoc    Action = "create_word_doc"
	ActionReadWordDoc      Action = "read_word_doc"
	ActionCreateExcelSheet Action = "create_excel_sheet"
	ActionReadExcelSheet   Action = "read_excel_sheet"
	ActionUpdateExcelSheet Action = "update_excel_sheet"

	ActionCreateMeet         Action = "create_meet"
	ActionUpdateMeet         Action = "update_meet"
	ActionDeleteMeet         Action = "delete_meet"
	ActionFetchCalendar      Action = "fetch_calendar"
	ActionCreateOutlookEvent Action = "create_outlook_event"

	ActionFetchNotes Action = "fetch_notes"
	ActionCreateNote Action = "create_note"

	ActionFetchCourses     Action = "fetch_courses"
	ActionFetchAssignments Action = "fetch_assignments"
	ActionFetchStudents    Action = "fetch_students"
	ActionCreateCourse     Action = "create_course"

	ActionFetchOrders Action = "fetch_orders"

	ActionFetchTeamsMessages Action = "fetch_teams_messages"
	ActionFetchTeamsChannels Action = "fetch_teams_channels"

	ActionFetchTelegramUpdates Action = "fetch_telegram_updates"
	ActionSendTelegramMessage  Action = "send_telegram_message"
	ActionManageTelegramGroup  Action = "manage_telegram_group"

	ActionHelp Action = "help"
	ActionNone Action = "none"
)

// AllActions lista o conjunto fechado de ações, na ordem apresentada ao NLU
var AllActions = []Action{
	ActionFetchEmails, ActionSendEmail, ActionFetchOutlookEmails, ActionSendOutlookEmail,
	ActionFetchFiles, ActionFetchOneDriveFiles,
	ActionCreateDoc, ActionReadDoc, ActionAppendDoc, ActionReplaceDoc, ActionClearDoc,
	ActionCreateSheet, ActionReadSheet, ActionUpdateSheet,
	ActionCreateWordDoc, ActionReadWordDoc, ActionCreateExcelSheet, ActionReadExcelSheet, ActionUpdateExcelSheet,
	ActionCreateMeet, ActionUpdateMeet, ActionDeleteMeet, ActionFetchCalendar, ActionCreateOutlookEvent,
	ActionFetchNotes, ActionCreateNote,
	ActionFetchCourses, ActionFetchAssignments, ActionFetchStudents, ActionCreateCourse,
	ActionFetchOrders,
	ActionFetchTeamsMessages, ActionFetchTeamsChannels,
	ActionFetchTelegramUpdates, ActionSendTelegramMessage, ActionManageTelegramGroup,
	ActionHelp, ActionNone,
}

var knownActions = func() map[Action]struct{} {
	m := make(map[Action]struct{}, len(AllActions))
	for _, a := range AllActions {
		m[a] = struct{}{}
	}
	return m
}()

// ParseAction converte uma tag em Action; tags desconhecidas viram ActionNone
func ParseAction(tag string) Action {
	a := Action(tag)
	if _, ok := knownActions[a]; ok {
		return a
	}
	return ActionNone
}

// CapabilitySummary é a resposta padrão quando nada mais se aplica
const CapabilitySummary = "I can help with Gmail, Outlook, Drive, OneDrive, Google Docs, Sheets, Word, Excel, " +
	"Google Meet, Keep, Classroom, Shopify, Microsoft Teams, and Telegram."

// Intent representa a intenção extraída do texto do usuário
type Intent struct {
	Action Action `json:"action"`

	// Parâmetros planos; campos ausentes no texto nunca são inventados
	Params Params `json:"parameters"`

	// UsesContext indica referência anafórica ("essa reunião")
	UsesContext bool `json:"usesContext"`

	NaturalResponse string `json:"naturalResponse"`
}

// ActionResponse é o envelope único devolvido ao cliente
type ActionResponse struct {
	Action  Action `json:"action"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Reply monta uma resposta sem dados
func Reply(action Action, message string) ActionResponse {
	return ActionResponse{Action: action, Message: message}
}

// ReplyWithData monta uma resposta com dados
func ReplyWithData(action Action, message string, data any) ActionResponse {
	return ActionResponse{Action: action, Message: message, Data: data}
}
