// internal/app/features/users/handler.go
package users

import (
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the users feature: account
// lifecycle (signup, login, logout), the caller's own profile, and the user
// directory.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Tokens     *auth.TokenIssuer
}

// NewHandler constructs a users Handler. It is called from the bootstrap
// BuildHandler function, where the DB, session manager, and token issuer
// are already initialized.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, tokens *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, SessionMgr: sm, Tokens: tokens}
}
