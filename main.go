package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bank-ledger/internal/config"
	"bank-ledger/internal/database"
	"bank-ledger/internal/ledger"
	"bank-ledger/internal/router"

	"github.com/sirupsen/logrus"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log := newLogger(cfg.Log)

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// audit database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// the ledger itself is in-memory; it starts empty on every boot
	var verifier ledger.PINVerifier = ledger.PlainPINVerifier{}
	if cfg.Security.HashPins {
		verifier = ledger.HashedPINVerifier{}
	}
	bank := ledger.NewWithVerifier(verifier)

	r := router.SetupRouter(cfg, bank, db, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	l := logrus.New()
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
