package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/mbolis/survey-box/config"
	"github.com/mbolis/survey-box/database"
	"github.com/mbolis/survey-box/httpx"
	"github.com/mbolis/survey-box/session"
)

type App struct {
	DB        *sql.DB
	Responses database.ResponseStore
	Sessions  *session.Manager
	Admin     *httpx.AdminCredentials
	*oauth.BearerServer
	config.Config
}
