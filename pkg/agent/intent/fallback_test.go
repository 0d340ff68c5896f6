package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		action Action
		params Params
	}{
		{"send email wins over fetch", "Send an email to ana@example.com", ActionSendEmail, Params{"to": "ana@example.com"}},
		{"send email without recipient", "send an email please", ActionSendEmail, Params{}},
		{"send email wins over outlook", "send an email via outlook to bob@x.com", ActionSendEmail, Params{"to": "bob@x.com"}},
		{"send email wins over telegram", "send a telegram email", ActionSendEmail, Params{}},
		{"send email wins over message", "send this message by email to bo@example.com", ActionSendEmail, Params{"to": "bo@example.com"}},
		{"outlook send without email", "send it with outlook", ActionSendOutlookEmail, Params{}},
		{"fetch gmail", "show my gmail", ActionFetchEmails, Params{"limit": 50}},
		{"cancel meet", "cancel the meet at 5pm", ActionDeleteMeet, Params{"time": "5pm"}},
		{"reschedule meet", "reschedule my meeting to 18:30", ActionUpdateMeet, Params{"time": "18:30"}},
		{"create meet", "create a meet at 6:30 PM", ActionCreateMeet, Params{"time": "6:30 pm"}},
		{"teams channels", "list my teams channels", ActionFetchTeamsChannels, Params{"limit": 10}},
		{"teams messages", "any new message?", ActionFetchTeamsMessages, Params{"limit": 5}},
		{"telegram before chat", "send a telegram message to the chat", ActionSendTelegramMessage, Params{}},
		{"telegram kick", "kick him from the telegram group", ActionManageTelegramGroup, Params{"action": "kick"}},
		{"onedrive before drive", "show my onedrive", ActionFetchOneDriveFiles, Params{"limit": 5}},
		{"drive", "list drive files", ActionFetchFiles, Params{"limit": 50}},
		{"orders", "latest shopify orders", ActionFetchOrders, Params{"limit": 50}},
		{"outlook", "check outlook", ActionFetchOutlookEmails, Params{"limit": 5}},
		{"word before doc", "create a word document", ActionCreateWordDoc, Params{}},
		{"doc replace", "replace text in the doc", ActionReplaceDoc, Params{}},
		{"sheet create", "create a new sheet", ActionCreateSheet, Params{}},
		{"excel read", "read the excel budget", ActionReadExcelSheet, Params{}},
		{"keep", "show my notes", ActionFetchNotes, Params{"limit": 10}},
		{"classroom students", "list students in the math class", ActionFetchStudents, Params{}},
		{"calendar", "what's on my agenda", ActionFetchCalendar, Params{"limit": 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackParse(tt.text)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.params, got.Params)
			assert.NotEmpty(t, got.NaturalResponse)
		})
	}
}

func TestFallbackParseHelp(t *testing.T) {
	got := FallbackParse("how are you today?")

	assert.Equal(t, ActionHelp, got.Action)
	assert.Equal(t, CapabilitySummary, got.NaturalResponse)
	assert.False(t, got.UsesContext)
}

func TestFallbackParseUsesContext(t *testing.T) {
	assert.True(t, FallbackParse("cancel that meeting").UsesContext)
	assert.True(t, FallbackParse("send an email with this meet link to bo@example.com").UsesContext)
	assert.False(t, FallbackParse("create a meet at 9am").UsesContext)
}

func TestFallbackParseIsDeterministic(t *testing.T) {
	text := "move the meeting to 4pm"
	assert.Equal(t, FallbackParse(text), FallbackParse(text))
}
