package api

import (
	"spicetrade-backend/internal/config"
	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/session"
)

type Server struct {
	db       *database.Database
	sessions *session.Store
	tokens   *session.TokenManager
	config   *config.Config
}

func NewServer(db *database.Database, cfg *config.Config) *Server {
	return &Server{
		db:       db,
		sessions: session.NewStore(cfg.Session.IdleTTL),
		tokens:   session.NewTokenManager(cfg),
		config:   cfg,
	}
}
