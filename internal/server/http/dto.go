package http

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

const dateLayout = "2006-01-02"

// --- contacts ---

type contactRequest struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Color  string  `json:"color"`
	Online bool    `json:"online"`
	Phone  *string `json:"phone"`
}

func (r contactRequest) toInput() services.ContactInput {
	return services.ContactInput{
		Name:   r.Name,
		Email:  r.Email,
		Color:  r.Color,
		Online: r.Online,
		Phone:  r.Phone,
	}
}

type contactResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Color          string  `json:"color"`
	Online         bool    `json:"online"`
	Phone          *string `json:"phone"`
	HasPasswordSet bool    `json:"has_password_set"`
}

func toContactResponse(d services.ContactDetail) contactResponse {
	return contactResponse{
		ID:             d.Contact.ID,
		Name:           d.Contact.Name,
		Email:          d.Contact.Email,
		Color:          d.Contact.Color,
		Online:         d.Contact.Online,
		Phone:          d.Contact.Phone,
		HasPasswordSet: d.State == models.StateLinkedRegistered,
	}
}

// --- tasks ---

type subtaskEntryRequest struct {
	ID          *int64 `json:"id"`
	Subtasktext string `json:"subtasktext"`
	Done        bool   `json:"done"`
}

// taskRequest uses the internal field names on input (due_date,
// assignee_infos as a plain id list); responses rename two fields and expand
// the assignees. A nil Subtasks or AssigneeIDs means the field was absent
// and the stored collection stays untouched.
type taskRequest struct {
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	DueDate     string                 `json:"due_date"`
	Prio        string                 `json:"prio"`
	Status      string                 `json:"status"`
	Title       string                 `json:"title"`
	Subtasks    *[]subtaskEntryRequest `json:"subtasks"`
	AssigneeIDs *[]int64               `json:"assignee_infos"`
}

func (r taskRequest) toInput() (services.TaskInput, error) {
	input := services.TaskInput{
		Category:    r.Category,
		Description: r.Description,
		Prio:        r.Prio,
		Status:      r.Status,
		Title:       r.Title,
		AssigneeIDs: r.AssigneeIDs,
	}

	if r.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, r.DueDate)
		if err != nil {
			return input, fmt.Errorf("%w: due_date must be formatted as YYYY-MM-DD", common.ErrorValidation)
		}
		input.DueDate = dueDate
	}

	if r.Subtasks != nil {
		entries := make([]services.SubtaskEntry, 0, len(*r.Subtasks))
		for _, e := range *r.Subtasks {
			entries = append(entries, services.SubtaskEntry{
				ID:          e.ID,
				Subtasktext: e.Subtasktext,
				Done:        e.Done,
			})
		}
		input.Subtasks = &entries
	}

	return input, nil
}

type subtaskResponse struct {
	ID          int64  `json:"id"`
	TaskID      int64  `json:"task_id"`
	Subtasktext string `json:"subtasktext"`
	Done        bool   `json:"done"`
}

func toSubtaskResponse(subtask models.Subtask) subtaskResponse {
	return subtaskResponse{
		ID:          subtask.ID,
		TaskID:      subtask.TaskID,
		Subtasktext: subtask.Subtasktext,
		Done:        subtask.Done,
	}
}

type taskResponse struct {
	ID            int64                 `json:"id"`
	TaskID        int64                 `json:"task-id"`
	Category      string                `json:"category"`
	Description   string                `json:"description"`
	DueDate       string                `json:"due-date"`
	Prio          string                `json:"prio"`
	Status        string                `json:"status"`
	Title         string                `json:"title"`
	Subtasks      []subtaskResponse     `json:"subtasks"`
	AssigneeInfos []models.AssigneeInfo `json:"assignee-infos"`
}

func toTaskResponse(d services.TaskDetail) taskResponse {
	subtaskList := make([]subtaskResponse, 0, len(d.Subtasks))
	for _, subtask := range d.Subtasks {
		subtaskList = append(subtaskList, toSubtaskResponse(subtask))
	}

	assignees := d.Assignees
	if assignees == nil {
		assignees = []models.AssigneeInfo{}
	}

	return taskResponse{
		ID:            d.Task.ID,
		TaskID:        d.Task.TaskID,
		Category:      d.Task.Category,
		Description:   d.Task.Description,
		DueDate:       d.Task.DueDate.Format(dateLayout),
		Prio:          d.Task.Prio,
		Status:        d.Task.Status,
		Title:         d.Task.Title,
		Subtasks:      subtaskList,
		AssigneeInfos: assignees,
	}
}

// --- subtasks (standalone resource) ---

type subtaskRequest struct {
	TaskID      int64  `json:"task_id"`
	Subtasktext string `json:"subtasktext"`
	Done        bool   `json:"done"`
}

func (r subtaskRequest) toInput() services.SubtaskInput {
	return services.SubtaskInput{
		TaskID:      r.TaskID,
		Subtasktext: r.Subtasktext,
		Done:        r.Done,
	}
}
