package seeder

import (
	"log"

	"riya-portal/internal/config"
)

func Defaults(cfg config.Config, logger *log.Logger) []Seeder {
	return []Seeder{
		AdminSeeder{Admin: cfg.Admin, Logger: logger},
	}
}
