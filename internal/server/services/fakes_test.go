package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	contactsrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/contacts"
	refreshtokensrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/refreshtokens"
	subtasksrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/subtasks"
	tasksrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for the Postgres schema, including its
// cascade behavior, shared by the fake repositories below.
type memStore struct {
	users    map[string]*models.User
	contacts map[int64]*models.Contact
	tokens   map[string]*models.RefreshToken
	tasks    map[int64]*models.Task
	subtasks map[int64]*models.Subtask

	// task id -> assigned contact ids
	assignees map[int64][]int64

	nextUserID    int
	nextContactID int64
	nextTaskID    int64
	nextSubtaskID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*models.User{},
		contacts:  map[int64]*models.Contact{},
		tokens:    map[string]*models.RefreshToken{},
		tasks:     map[int64]*models.Task{},
		subtasks:  map[int64]*models.Subtask{},
		assignees: map[int64][]int64{},
	}
}

// deleteUser mimics the schema's ON DELETE CASCADE: the linked contact (and
// its assignments) and the user's refresh tokens go with the user.
func (s *memStore) deleteUser(id string) {
	delete(s.users, id)
	for cid, contact := range s.contacts {
		if contact.UserID != nil && *contact.UserID == id {
			s.deleteContact(cid)
		}
	}
	for token, rt := range s.tokens {
		if rt.UserID == id {
			delete(s.tokens, token)
		}
	}
}

func (s *memStore) deleteContact(id int64) {
	delete(s.contacts, id)
	for taskID, ids := range s.assignees {
		kept := ids[:0]
		for _, cid := range ids {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		s.assignees[taskID] = kept
	}
}

func (s *memStore) deleteTask(id int64) {
	delete(s.tasks, id)
	delete(s.assignees, id)
	for sid, subtask := range s.subtasks {
		if subtask.TaskID == id {
			delete(s.subtasks, sid)
		}
	}
}

// --- fake repositories ---

type fakeUsersRepo struct{ s *memStore }

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, fmt.Errorf("%w: email already in use", common.ErrorValidation)
		}
	}
	if user.ID == "" {
		f.s.nextUserID++
		user.ID = fmt.Sprintf("user-%d", f.s.nextUserID)
	}
	user.CreatedAt = time.Now()
	clone := *user
	f.s.users[user.ID] = &clone
	return user, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) SetPassword(ctx context.Context, id string, passwordHash string) error {
	u, ok := f.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	f.s.deleteUser(id)
	return nil
}

type fakeContactsRepo struct{ s *memStore }

func (f *fakeContactsRepo) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	for _, c := range f.s.contacts {
		if strings.EqualFold(c.Email, contact.Email) {
			return nil, fmt.Errorf("%w: contact email already in use", common.ErrorValidation)
		}
	}
	if contact.Color == "" {
		contact.Color = "blue"
	}
	f.s.nextContactID++
	contact.ID = f.s.nextContactID
	clone := *contact
	f.s.contacts[contact.ID] = &clone
	return contact, nil
}

func (f *fakeContactsRepo) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	c, ok := f.s.contacts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeContactsRepo) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	for _, c := range f.s.contacts {
		if strings.EqualFold(c.Email, email) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeContactsRepo) GetByUserID(ctx context.Context, userID string) (*models.Contact, error) {
	for _, c := range f.s.contacts {
		if c.UserID != nil && *c.UserID == userID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeContactsRepo) List(ctx context.Context) ([]models.Contact, error) {
	result := make([]models.Contact, 0, len(f.s.contacts))
	for _, c := range f.s.contacts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeContactsRepo) Update(ctx context.Context, contact *models.Contact) error {
	if _, ok := f.s.contacts[contact.ID]; !ok {
		return common.ErrorNotFound
	}
	clone := *contact
	f.s.contacts[contact.ID] = &clone
	return nil
}

func (f *fakeContactsRepo) Link(ctx context.Context, id int64, userID string) error {
	c, ok := f.s.contacts[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.UserID = &userID
	return nil
}

func (f *fakeContactsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.s.contacts[id]; !ok {
		return common.ErrorNotFound
	}
	f.s.deleteContact(id)
	return nil
}

type fakeRefreshRepo struct{ s *memStore }

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.s.tokens[token] = &models.RefreshToken{
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *rt
	return &clone, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	delete(f.s.tokens, token)
	return nil
}

type fakeTasksRepo struct{ s *memStore }

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Prio == "" {
		task.Prio = models.PrioMedium
	}
	if task.Status == "" {
		task.Status = models.StatusToDos
	}
	f.s.nextTaskID++
	task.ID = f.s.nextTaskID
	clone := *task
	f.s.tasks[task.ID] = &clone
	return task, nil
}

func (f *fakeTasksRepo) AssignPublicID(ctx context.Context, id int64) (int64, error) {
	t, ok := f.s.tasks[id]
	if !ok || t.TaskID != 0 {
		return 0, common.ErrorNotFound
	}
	t.TaskID = t.ID
	return t.TaskID, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := f.s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTasksRepo) List(ctx context.Context) ([]models.Task, error) {
	result := make([]models.Task, 0, len(f.s.tasks))
	for _, t := range f.s.tasks {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	t, ok := f.s.tasks[task.ID]
	if !ok {
		return common.ErrorNotFound
	}
	// task_id is never written by updates
	publicID := t.TaskID
	clone := *task
	clone.TaskID = publicID
	f.s.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.s.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	f.s.deleteTask(id)
	return nil
}

func (f *fakeTasksRepo) ReplaceAssignees(ctx context.Context, taskID int64, contactIDs []int64) error {
	f.s.assignees[taskID] = append([]int64{}, contactIDs...)
	return nil
}

func (f *fakeTasksRepo) ListAssignees(ctx context.Context, taskID int64) ([]models.AssigneeInfo, error) {
	ids := append([]int64{}, f.s.assignees[taskID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []models.AssigneeInfo
	for _, cid := range ids {
		if c, ok := f.s.contacts[cid]; ok {
			result = append(result, models.AssigneeInfo{ID: c.ID, Name: c.Name, Color: c.Color})
		}
	}
	return result, nil
}

type fakeSubtasksRepo struct{ s *memStore }

func (f *fakeSubtasksRepo) Create(ctx context.Context, subtask *models.Subtask) (*models.Subtask, error) {
	f.s.nextSubtaskID++
	subtask.ID = f.s.nextSubtaskID
	clone := *subtask
	f.s.subtasks[subtask.ID] = &clone
	return subtask, nil
}

func (f *fakeSubtasksRepo) GetByID(ctx context.Context, id int64) (*models.Subtask, error) {
	st, ok := f.s.subtasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *st
	return &clone, nil
}

func (f *fakeSubtasksRepo) List(ctx context.Context) ([]models.Subtask, error) {
	result := make([]models.Subtask, 0, len(f.s.subtasks))
	for _, st := range f.s.subtasks {
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeSubtasksRepo) ListByTask(ctx context.Context, taskID int64) ([]models.Subtask, error) {
	var result []models.Subtask
	for _, st := range f.s.subtasks {
		if st.TaskID == taskID {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeSubtasksRepo) Update(ctx context.Context, subtask *models.Subtask) error {
	if _, ok := f.s.subtasks[subtask.ID]; !ok {
		return common.ErrorNotFound
	}
	clone := *subtask
	f.s.subtasks[subtask.ID] = &clone
	return nil
}

func (f *fakeSubtasksRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.s.subtasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.s.subtasks, id)
	return nil
}

// fakeRepoManager hands out fake repositories over the shared memStore,
// ignoring the db handle they are bound to.
type fakeRepoManager struct{ s *memStore }

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{s: newMemStore()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return &fakeUsersRepo{m.s} }
func (m *fakeRepoManager) Contacts(db dbx.DBTX) contactsrepo.Repository {
	return &fakeContactsRepo{m.s}
}
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository { return &fakeTasksRepo{m.s} }
func (m *fakeRepoManager) Subtasks(db dbx.DBTX) subtasksrepo.Repository {
	return &fakeSubtasksRepo{m.s}
}
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return &fakeRefreshRepo{m.s}
}
