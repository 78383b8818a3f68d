package main

import (
	"log"

	"github.com/moaz779/Task-Workflow-Manager/config"
	"github.com/moaz779/Task-Workflow-Manager/models"
	"github.com/moaz779/Task-Workflow-Manager/routes"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

func main() {
	cfg := config.Load()

	db := config.ConnectDB(cfg)
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var notifier utils.Notifier = utils.NoopNotifier{}
	if cfg.SMTPHost != "" {
		notifier = &utils.SMTPNotifier{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
		}
	}

	r := routes.SetupRouter(db, cfg, notifier)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
