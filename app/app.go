package app

import (
	"github.com/go-chi/jwtauth"

	"github.com/abellini/survey-front/api"
	"github.com/abellini/survey-front/config"
	"github.com/abellini/survey-front/database"
)

type App struct {
	*database.Store
	*api.Client
	JWT *jwtauth.JWTAuth
	config.Config
}
