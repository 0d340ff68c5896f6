package router

import (
	"context"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
)

type fakeGmail struct {
	sent   []connector.OutgoingEmail
	emails []connector.Email
	err    error
}

func (f *fakeGmail) ListEmails(context.Context, connector.EmailQuery) ([]connector.Email, error) {
	return f.emails, f.err
}

func (f *fakeGmail) SendEmail(_ context.Context, msg connector.OutgoingEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeDrive struct {
	files   []connector.File
	matches map[string][]connector.FileRef
	lookups int
}

func (f *fakeDrive) ListFiles(context.Context, int) ([]connector.File, error) { return f.files, nil }

func (f *fakeDrive) FindFiles(_ context.Context, name, _ string) ([]connector.FileRef, error) {
	f.lookups++
	return f.matches[name], nil
}

type replaceCall struct{ id, find, replace string }

type fakeDocs struct {
	replaced []replaceCall
	appended map[string]string
	content  string
}

func (f *fakeDocs) CreateDoc(_ context.Context, title, _ string) (connector.Doc, error) {
	return connector.Doc{DocumentID: "new-doc", Title: title}, nil
}

func (f *fakeDocs) ReadDoc(_ context.Context, id string) (connector.DocContent, error) {
	return connector.DocContent{DocumentID: id, Content: f.content}, nil
}

func (f *fakeDocs) AppendText(_ context.Context, id, text string) error {
	if f.appended == nil {
		f.appended = map[string]string{}
	}
	f.appended[id] += text
	return nil
}

func (f *fakeDocs) ReplaceText(_ context.Context, id, find, replace string) error {
	f.replaced = append(f.replaced, replaceCall{id, find, replace})
	return nil
}

func (f *fakeDocs) ClearDoc(context.Context, string) error { return nil }

type fakeSheets struct {
	values  [][]string
	updated map[string][][]string
}

func (f *fakeSheets) CreateSpreadsheet(_ context.Context, title, _ string) (connector.Spreadsheet, error) {
	return connector.Spreadsheet{SpreadsheetID: "s-1", SpreadsheetURL: "https://sheets/s-1"}, nil
}

func (f *fakeSheets) ReadRange(context.Context, string, string) ([][]string, error) {
	return f.values, nil
}

func (f *fakeSheets) UpdateRange(_ context.Context, id, rng string, values [][]string) error {
	if f.updated == nil {
		f.updated = map[string][][]string{}
	}
	f.updated[id+"!"+rng] = values
	return nil
}

type fakeCalendar struct {
	created []connector.EventInput
	updated map[string]time.Time
	deleted []string
	nextID  string
	err     error
}

func (f *fakeCalendar) CreateEvent(_ context.Context, in connector.EventInput) (connector.Event, error) {
	if f.err != nil {
		return connector.Event{}, f.err
	}
	f.created = append(f.created, in)
	id := f.nextID
	if id == "" {
		id = "ev-1"
	}
	return connector.Event{ExternalID: id, Link: "https://meet.google.com/abc-defg-hij", Start: in.Start, End: in.End, Summary: in.Subject}, nil
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, id string, start, _ time.Time) error {
	if f.updated == nil {
		f.updated = map[string]time.Time{}
	}
	f.updated[id] = start
	return nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCalendar) ListEvents(context.Context, int) ([]connector.Event, error) { return nil, nil }

type fakeClassroom struct {
	courses  map[string][]connector.FileRef
	students []connector.Student
}

func (f *fakeClassroom) ListCourses(context.Context, int) ([]connector.Course, error) { return nil, nil }

func (f *fakeClassroom) FindCourses(_ context.Context, name string) ([]connector.FileRef, error) {
	return f.courses[name], nil
}

func (f *fakeClassroom) ListAssignments(context.Context, string, int) ([]connector.Assignment, error) {
	return nil, nil
}

func (f *fakeClassroom) ListStudents(context.Context, string) ([]connector.Student, error) {
	return f.students, nil
}

func (f *fakeClassroom) CreateCourse(_ context.Context, in connector.CourseInput) (connector.Course, error) {
	return connector.Course{ID: "c-1", Name: in.Name, EnrollmentCode: "xyz12"}, nil
}

type fakeOneDrive struct {
	matches map[string][]connector.FileRef
	tokens  []string
}

func (f *fakeOneDrive) ListFiles(context.Context, string, int) ([]connector.File, error) { return nil, nil }

func (f *fakeOneDrive) FindFiles(_ context.Context, token, name string) ([]connector.FileRef, error) {
	f.tokens = append(f.tokens, token)
	return f.matches[name], nil
}

type fakeOffice struct {
	appended map[string][]string
}

func (f *fakeOffice) CreateWordDoc(_ context.Context, _, name string) (connector.DriveItem, error) {
	return connector.DriveItem{ID: "w-1", Name: name + ".docx"}, nil
}

func (f *fakeOffice) OpenWordDoc(_ context.Context, _, id string) (connector.DriveItem, error) {
	return connector.DriveItem{ID: id}, nil
}

func (f *fakeOffice) CreateWorkbook(_ context.Context, _, name string) (connector.DriveItem, error) {
	return connector.DriveItem{ID: "x-1", Name: name + ".xlsx"}, nil
}

func (f *fakeOffice) ReadWorksheet(context.Context, string, string) ([]connector.SheetRow, error) {
	return nil, nil
}

func (f *fakeOffice) AppendWorksheetRow(_ context.Context, _, id string, values []string) error {
	if f.appended == nil {
		f.appended = map[string][]string{}
	}
	f.appended[id] = values
	return nil
}

type fakeTelegram struct {
	sent    []string
	kicked  []int64
	renamed string
}

func (f *fakeTelegram) GetMe(context.Context, string) (connector.TelegramBot, error) {
	return connector.TelegramBot{ID: 1, Username: "agent_bot"}, nil
}

func (f *fakeTelegram) GetRecentMessages(context.Context, string, int) ([]connector.TelegramMessage, error) {
	return []connector.TelegramMessage{{MessageID: 1, Text: "hi"}}, nil
}

func (f *fakeTelegram) SendMessage(_ context.Context, _, chatID, text string) (connector.TelegramMessage, error) {
	f.sent = append(f.sent, chatID+":"+text)
	return connector.TelegramMessage{MessageID: 2, Text: text}, nil
}

func (f *fakeTelegram) RemoveMember(_ context.Context, _, _ string, userID int64) error {
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakeTelegram) PinMessage(context.Context, string, string, int64) error { return nil }

func (f *fakeTelegram) RenameChat(_ context.Context, _, _, title string) error {
	f.renamed = title
	return nil
}

type fakeShopify struct {
	query connector.OrderQuery
}

func (f *fakeShopify) ListOrders(_ context.Context, _ connector.ShopifyConfig, q connector.OrderQuery) ([]connector.Order, error) {
	f.query = q
	return []connector.Order{{ID: 1, OrderNumber: 1001}}, nil
}

func (f *fakeShopify) Shop(context.Context, connector.ShopifyConfig) (connector.ShopInfo, error) {
	return connector.ShopInfo{Name: "Demo"}, nil
}
