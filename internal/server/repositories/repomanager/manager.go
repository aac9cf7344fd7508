package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/supreassistant/internal/dbx"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/companions"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/events"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/messages"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/notes"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// services can run their queries on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Companions(db dbx.DBTX) companions.Repository
	Messages(db dbx.DBTX) messages.Repository
	Events(db dbx.DBTX) events.Repository
	Notes(db dbx.DBTX) notes.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
