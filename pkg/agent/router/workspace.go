package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/resolver"
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// Keep

func (r *Router) fetchNotes(ctx context.Context, req *Request, p intent.NoteParams) (intent.ActionResponse, error) {
	if r.conn.Keep == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	notes, err := r.conn.Keep.ListNotes(ctx, intent.ClampLimit(p.Limit, 10))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list notes: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d notes.", len(notes)), notes), nil
}

func (r *Router) createNote(ctx context.Context, req *Request, p intent.NoteParams) (intent.ActionResponse, error) {
	if r.conn.Keep == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	title := p.Title
	if title == "" {
		title = "New Note"
	}
	body := p.Content
	if body == "" {
		body = "No content"
	}

	note, err := r.conn.Keep.CreateNote(ctx, title, body)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create note: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Created note: %q", note.Title), []connector.Note{note}), nil
}

// Classroom

// courseID resolve a turma por id ou nome. Resposta não nula encerra o handler.
func (r *Router) courseID(ctx context.Context, req *Request, p intent.ClassroomParams, missing string) (string, *intent.ActionResponse, error) {
	ref := resolver.NameReference{DisplayName: p.CourseName, ExplicitID: p.CourseID}
	if isEmpty(ref) {
		resp := intent.Reply(req.Intent.Action, missing)
		return "", &resp, nil
	}

	res, err := r.courses.Resolve(ctx, ref, resolver.CourseType)
	if err != nil {
		return "", nil, err
	}
	if !res.Found {
		resp := intent.Reply(req.Intent.Action, fmt.Sprintf("❌ Could not find classroom named %q.", res.Name))
		return "", &resp, nil
	}
	if r.conn.Classroom == nil {
		return "", nil, connector.ErrNotConfigured
	}
	return res.ID, nil, nil
}

func (r *Router) fetchCourses(ctx context.Context, req *Request, p intent.ClassroomParams) (intent.ActionResponse, error) {
	if r.conn.Classroom == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	courses, err := r.conn.Classroom.ListCourses(ctx, intent.ClampLimit(p.Limit, 10))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list courses: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d classrooms.", len(courses)), courses), nil
}

func (r *Router) fetchAssignments(ctx context.Context, req *Request, p intent.ClassroomParams) (intent.ActionResponse, error) {
	id, stop, err := r.courseID(ctx, req, p, "⚠️ Please specify which classroom/course to list assignments from.")
	if stop != nil || err != nil {
		return deref(stop), err
	}

	assignments, err := r.conn.Classroom.ListAssignments(ctx, id, intent.ClampLimit(p.Limit, 10))
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list assignments: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d assignments.", len(assignments)), assignments), nil
}

func (r *Router) fetchStudents(ctx context.Context, req *Request, p intent.ClassroomParams) (intent.ActionResponse, error) {
	id, stop, err := r.courseID(ctx, req, p, "⚠️ Please specify a classroom name.")
	if stop != nil || err != nil {
		return deref(stop), err
	}

	students, err := r.conn.Classroom.ListStudents(ctx, id)
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("list students: %w", err)
	}

	if term := strings.ToLower(strings.TrimSpace(p.StudentName)); term != "" {
		filtered := make([]connector.Student, 0, len(students))
		for _, s := range students {
			if strings.Contains(strings.ToLower(s.FullName), term) {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}
	return intent.ReplyWithData(req.Intent.Action, fmt.Sprintf("✅ Found %d students in the class.", len(students)), students), nil
}

func (r *Router) createCourse(ctx context.Context, req *Request, p intent.ClassroomParams) (intent.ActionResponse, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = strings.TrimSpace(p.Title)
	}
	if name == "" {
		return intent.Reply(req.Intent.Action, "Please provide a name for the classroom."), nil
	}
	if r.conn.Classroom == nil {
		return intent.ActionResponse{}, connector.ErrNotConfigured
	}

	course, err := r.conn.Classroom.CreateCourse(ctx, connector.CourseInput{
		Name:        name,
		Section:     p.Section,
		Description: p.Description,
		Room:        p.Room,
	})
	if err != nil {
		return intent.ActionResponse{}, fmt.Errorf("create course: %w", err)
	}
	return intent.ReplyWithData(req.Intent.Action,
		fmt.Sprintf("✅ Created Classroom: %q (Code: %s)", course.Name, course.EnrollmentCode), []connector.Course{course}), nil
}
