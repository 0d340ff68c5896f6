package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// Classroom implementa connector.Classroom
type Classroom struct {
	api *rest.Client
}

type courseList struct {
	Courses []connector.Course `json:"courses"`
}

func (c *Classroom) courses(ctx context.Context, limit int) ([]connector.Course, error) {
	var out courseList
	err := c.api.Do(ctx, rest.Request{
		Path: "/courses",
		Query: url.Values{
			"pageSize":     {strconv.Itoa(limit)},
			"courseStates": {"ACTIVE"},
		},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar turmas: %w", err)
	}
	return out.Courses, nil
}

// ListCourses lista as turmas ativas
func (c *Classroom) ListCourses(ctx context.Context, limit int) ([]connector.Course, error) {
	return c.courses(ctx, limit)
}

// FindCourses busca turmas pelo nome, sem diferenciar maiúsculas
func (c *Classroom) FindCourses(ctx context.Context, name string) ([]connector.FileRef, error) {
	courses, err := c.courses(ctx, 100)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(name))
	var exact, partial []connector.FileRef
	for _, course := range courses {
		lower := strings.ToLower(course.Name)
		switch {
		case lower == term:
			exact = append(exact, connector.FileRef{ID: course.ID, Name: course.Name})
		case strings.Contains(lower, term):
			partial = append(partial, connector.FileRef{ID: course.ID, Name: course.Name})
		}
	}
	return append(exact, partial...), nil
}

// ListAssignments lista as atividades da turma
func (c *Classroom) ListAssignments(ctx context.Context, courseID string, limit int) ([]connector.Assignment, error) {
	var out struct {
		CourseWork []struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			State   string `json:"state"`
			DueDate *struct {
				Year  int `json:"year"`
				Month int `json:"month"`
				Day   int `json:"day"`
			} `json:"dueDate"`
			WorkType      string `json:"workType"`
			AlternateLink string `json:"alternateLink"`
		} `json:"courseWork"`
	}
	err := c.api.Do(ctx, rest.Request{
		Path:  "/courses/" + url.PathEscape(courseID) + "/courseWork",
		Query: url.Values{"pageSize": {strconv.Itoa(limit)}},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar atividades: %w", err)
	}

	assignments := make([]connector.Assignment, 0, len(out.CourseWork))
	for _, w := range out.CourseWork {
		a := connector.Assignment{ID: w.ID, Title: w.Title, State: w.State, WorkType: w.WorkType, Link: w.AlternateLink}
		if w.DueDate != nil {
			a.DueDate = fmt.Sprintf("%04d-%02d-%02d", w.DueDate.Year, w.DueDate.Month, w.DueDate.Day)
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// ListStudents lista os alunos matriculados
func (c *Classroom) ListStudents(ctx context.Context, courseID string) ([]connector.Student, error) {
	var out struct {
		Students []struct {
			UserID  string `json:"userId"`
			Profile struct {
				Name struct {
					FullName string `json:"fullName"`
				} `json:"name"`
				EmailAddress string `json:"emailAddress"`
			} `json:"profile"`
		} `json:"students"`
	}
	err := c.api.Do(ctx, rest.Request{Path: "/courses/" + url.PathEscape(courseID) + "/students"}, &out)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar alunos: %w", err)
	}

	students := make([]connector.Student, 0, len(out.Students))
	for _, s := range out.Students {
		students = append(students, connector.Student{
			UserID:   s.UserID,
			FullName: s.Profile.Name.FullName,
			Email:    s.Profile.EmailAddress,
		})
	}
	return students, nil
}

// CreateCourse cria a turma em estado provisionado, com o usuário como dono
func (c *Classroom) CreateCourse(ctx context.Context, in connector.CourseInput) (connector.Course, error) {
	var created connector.Course
	err := c.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/courses",
		Body: map[string]string{
			"name":        in.Name,
			"section":     in.Section,
			"description": in.Description,
			"room":        in.Room,
			"ownerId":     "me",
			"courseState": "PROVISIONED",
		},
	}, &created)
	if err != nil {
		return connector.Course{}, fmt.Errorf("erro ao criar turma: %w", err)
	}
	return created, nil
}
