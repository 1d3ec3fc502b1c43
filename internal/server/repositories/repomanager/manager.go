// Package repomanager wires the per-entity repositories behind one factory
// interface, so services can obtain repositories bound to either the shared
// *sql.DB or a transaction handle.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/subtasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Subtasks(db dbx.DBTX) subtasks.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
