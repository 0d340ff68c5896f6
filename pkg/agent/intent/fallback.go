package intent

import (
	"regexp"
	"strings"
)

var (
	twelveHourPattern = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*[ap]m)\b`)
	twentyFourPattern = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
	emailPattern      = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	contextCues       = []string{"this meet", "that meet", "that link", "previous meeting", "the meeting"}
)

// rule é um grupo de pistas de domínio; o primeiro grupo que casa decide
type rule struct {
	cues []string
	// all exige todas as pistas em vez de qualquer uma
	all    bool
	decide func(q, original string, usesContext bool) Intent
}

func (r rule) matches(q string) bool {
	if r.all {
		return containsAll(q, r.cues...)
	}
	return containsAny(q, r.cues...)
}

// fallbackRules está em ordem de precedência. "send" + "email" vale antes de
// qualquer grupo e sempre vira send_email; depois vêm mensageria, e-mail,
// arquivos, comércio, calendário e documentos
var fallbackRules = []rule{
	{cues: []string{"send", "email"}, all: true, decide: gmailRule},
	{cues: []string{"telegram"}, decide: telegramRule},
	{cues: []string{"teams", "message", "chat"}, decide: teamsRule},
	{cues: []string{"outlook"}, decide: outlookRule},
	{cues: []string{"email", "gmail"}, decide: gmailRule},
	{cues: []string{"onedrive", "one drive"}, decide: func(string, string, bool) Intent {
		return fallbackIntent(ActionFetchOneDriveFiles, false, Params{"limit": 5}, "Fetching your OneDrive files.")
	}},
	{cues: []string{"drive", "file"}, decide: func(string, string, bool) Intent {
		return fallbackIntent(ActionFetchFiles, false, Params{"limit": 50}, "Fetching your Drive files.")
	}},
	{cues: []string{"order", "shopify"}, decide: func(string, string, bool) Intent {
		return fallbackIntent(ActionFetchOrders, false, Params{"limit": 50}, "Fetching your Shopify orders.")
	}},
	{cues: []string{"meet"}, decide: meetRule},
	{cues: []string{"calendar", "agenda"}, decide: func(string, string, bool) Intent {
		return fallbackIntent(ActionFetchCalendar, false, Params{"limit": 10}, "Fetching your upcoming events.")
	}},
	{cues: []string{"excel"}, decide: excelRule},
	{cues: []string{"sheet", "spreadsheet"}, decide: sheetRule},
	{cues: []string{"word"}, decide: wordRule},
	{cues: []string{"doc", "document"}, decide: docRule},
	{cues: []string{"note", "keep"}, decide: noteRule},
	{cues: []string{"classroom", "course", "class"}, decide: classroomRule},
}

// FallbackParse é o parser determinístico por palavras-chave.
// Não depende de rede e pode ser testado isoladamente.
func FallbackParse(text string) Intent {
	q := strings.ToLower(text)
	usesContext := containsAny(q, contextCues...)

	for _, r := range fallbackRules {
		if r.matches(q) {
			return r.decide(q, text, usesContext)
		}
	}

	return fallbackIntent(ActionHelp, false, Params{}, CapabilitySummary)
}

func telegramRule(q, _ string, _ bool) Intent {
	switch {
	case containsAny(q, "kick", "ban", "remove"):
		return fallbackIntent(ActionManageTelegramGroup, false, Params{"action": "kick"}, "I can remove a member from the Telegram group.")
	case containsAny(q, "pin"):
		return fallbackIntent(ActionManageTelegramGroup, false, Params{"action": "pin"}, "I can pin a message in the Telegram group.")
	case containsAny(q, "title", "rename"):
		return fallbackIntent(ActionManageTelegramGroup, false, Params{"action": "title"}, "I can rename the Telegram group.")
	case containsAny(q, "send"):
		return fallbackIntent(ActionSendTelegramMessage, false, Params{}, "I can send a Telegram message. Which chat and what text?")
	default:
		return fallbackIntent(ActionFetchTelegramUpdates, false, Params{"limit": 5}, "Fetching recent Telegram messages.")
	}
}

func teamsRule(q, _ string, _ bool) Intent {
	if containsAny(q, "channel") {
		return fallbackIntent(ActionFetchTeamsChannels, false, Params{"limit": 10}, "Fetching your Teams channels...")
	}
	return fallbackIntent(ActionFetchTeamsMessages, false, Params{"limit": 5}, "Fetching your latest Teams messages...")
}

func outlookRule(q, original string, _ bool) Intent {
	switch {
	case containsAny(q, "send"):
		return fallbackIntent(ActionSendOutlookEmail, false, recipientParams(original), "Who should I email?")
	case containsAny(q, "event", "meeting", "calendar"):
		return fallbackIntent(ActionCreateOutlookEvent, false, timeParams(original), "I can create an Outlook calendar event.")
	default:
		return fallbackIntent(ActionFetchOutlookEmails, false, Params{"limit": 5}, "Fetching your Outlook emails.")
	}
}

func gmailRule(q, original string, usesContext bool) Intent {
	if containsAll(q, "send", "email") {
		return fallbackIntent(ActionSendEmail, usesContext, recipientParams(original), "Who should I send the email to?")
	}
	return fallbackIntent(ActionFetchEmails, false, Params{"limit": 50}, "Fetching your recent emails.")
}

func meetRule(q, original string, usesContext bool) Intent {
	switch {
	case containsAny(q, "delete", "cancel"):
		return fallbackIntent(ActionDeleteMeet, usesContext, timeParams(original), "I can delete the last created Google Meet for you.")
	case containsAny(q, "update", "reschedule", "move"):
		return fallbackIntent(ActionUpdateMeet, usesContext, timeParams(original),
			"I can reschedule the last created Google Meet. Please provide new date and/or time.")
	case containsAny(q, "list", "upcoming", "show", "calendar", "agenda"):
		return fallbackIntent(ActionFetchCalendar, false, Params{"limit": 10}, "Fetching your upcoming events.")
	default:
		return fallbackIntent(ActionCreateMeet, usesContext, timeParams(original),
			"I can create a Google Meet. Please provide a date and time if needed.")
	}
}

func excelRule(q, _ string, _ bool) Intent {
	switch {
	case containsAny(q, "create", "new"):
		return fallbackIntent(ActionCreateExcelSheet, false, Params{}, "I can create a new Excel workbook.")
	case containsAny(q, "add", "append", "update"):
		return fallbackIntent(ActionUpdateExcelSheet, true, Params{}, "I can add a row to the workbook.")
	default:
		return fallbackIntent(ActionReadExcelSheet, true, Params{}, "I can read the workbook.")
	}
}

func sheetRule(q, _ string, _ bool) Intent {
	switch {
	case containsAny(q, "create", "new"):
		return fallbackIntent(ActionCreateSheet, false, Params{}, "I can create a new Google Sheet for you.")
	case containsAny(q, "update", "edit", "change"):
		return fallbackIntent(ActionUpdateSheet, true, Params{}, "I can update values in the sheet.")
	default:
		return fallbackIntent(ActionReadSheet, true, Params{}, "I can read data from the sheet.")
	}
}

func wordRule(q, _ string, _ bool) Intent {
	if containsAny(q, "create", "new") {
		return fallbackIntent(ActionCreateWordDoc, false, Params{}, "I can create a new Word document.")
	}
	return fallbackIntent(ActionReadWordDoc, true, Params{}, "I can open the Word document.")
}

func docRule(q, _ string, _ bool) Intent {
	switch {
	case containsAny(q, "create", "new"):
		return fallbackIntent(ActionCreateDoc, false, Params{}, "I can create a new Google Doc for you.")
	case containsAny(q, "append", "add"):
		return fallbackIntent(ActionAppendDoc, true, Params{}, "I can add content to the document.")
	case containsAny(q, "replace"):
		return fallbackIntent(ActionReplaceDoc, true, Params{}, "I can replace text in the document.")
	case containsAny(q, "clear"):
		return fallbackIntent(ActionClearDoc, true, Params{}, "I can clear the document.")
	default:
		return fallbackIntent(ActionReadDoc, true, Params{}, "I can read the document content.")
	}
}

func noteRule(q, _ string, _ bool) Intent {
	if containsAny(q, "create", "new", "add") {
		return fallbackIntent(ActionCreateNote, false, Params{}, "I can create a Keep note.")
	}
	return fallbackIntent(ActionFetchNotes, false, Params{"limit": 10}, "Fetching your Keep notes.")
}

func classroomRule(q, _ string, _ bool) Intent {
	switch {
	case containsAny(q, "assignment", "coursework", "homework"):
		return fallbackIntent(ActionFetchAssignments, false, Params{"limit": 10}, "I can list assignments. Which classroom?")
	case containsAny(q, "student"):
		return fallbackIntent(ActionFetchStudents, false, Params{}, "I can list students. Which classroom?")
	case containsAny(q, "create", "new"):
		return fallbackIntent(ActionCreateCourse, false, Params{}, "I can create a classroom. What should it be called?")
	default:
		return fallbackIntent(ActionFetchCourses, false, Params{"limit": 10}, "Fetching your classrooms.")
	}
}

func fallbackIntent(action Action, usesContext bool, params Params, natural string) Intent {
	return Intent{
		Action:          action,
		Params:          params,
		UsesContext:     usesContext,
		NaturalResponse: natural,
	}
}

// timeParams extrai um horário que o usuário escreveu ("5pm", "17:30")
func timeParams(text string) Params {
	if m := twelveHourPattern.FindStringSubmatch(text); m != nil {
		return Params{"time": strings.ToLower(m[1])}
	}
	if m := twentyFourPattern.FindStringSubmatch(text); m != nil {
		return Params{"time": m[1]}
	}
	return Params{}
}

func recipientParams(text string) Params {
	if addr := emailPattern.FindString(text); addr != "" {
		return Params{"to": addr}
	}
	return Params{}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
