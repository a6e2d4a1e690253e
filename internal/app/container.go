package app

import (
	"context"
	"log"
	"time"

	"riya-portal/internal/config"
	dbpostgres "riya-portal/internal/database/postgres"
	"riya-portal/internal/infrastructure/cache"
	"riya-portal/internal/infrastructure/mailer"
	"riya-portal/internal/pkg/jwt"
	"riya-portal/internal/repository"
	ucauth "riya-portal/internal/usecase/auth"
	"riya-portal/internal/usecase/career"
	uccontact "riya-portal/internal/usecase/contact"
	"riya-portal/internal/usecase/intake"
	ucposting "riya-portal/internal/usecase/posting"
	"riya-portal/internal/ws"
)

// Container owns the process-wide resources and the services built on them.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     *dbpostgres.Pool
	Cache  *cache.Redis
	Mailer mailer.Sender
	Hub    *ws.Hub

	Auth     *ucauth.Service
	Intake   *intake.Service
	Career   *career.Service
	Postings *ucposting.Service
	Contacts *uccontact.Service
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	sender, err := newMailer(cfg.Mail, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	users := repository.NewPostgresUserRepository(db)
	postings := repository.NewPostgresPostingRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)
	contacts := repository.NewPostgresContactRepository(db)
	resumes := repository.NewPostgresResumeStore(db)

	tokens := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	intakeSvc := intake.NewService(apps, resumes, sender, hub, logger, intake.Options{
		MaxResumeBytes: cfg.Upload.MaxResumeBytes,
		MailTimeout:    cfg.Mail.SendTimeout,
	})

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		Mailer: sender,
		Hub:    hub,

		Auth:     ucauth.NewService(users, tokens, redis, sender, cfg.App.BaseURL, logger),
		Intake:   intakeSvc,
		Career:   career.NewService(apps, resumes, logger),
		Postings: ucposting.NewService(postings, redis, logger),
		Contacts: uccontact.NewService(contacts, hub, logger),
	}, nil
}

func newMailer(cfg config.MailConfig, logger *log.Logger) (mailer.Sender, error) {
	if !cfg.Enabled() {
		logger.Printf("[Mail] SMTP not configured, outgoing mail is logged only")
		return mailer.NewNoop(logger), nil
	}
	return mailer.NewSMTP(cfg)
}

// Close waits for background mail and then releases the stores.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Intake != nil {
		c.Intake.Wait()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
