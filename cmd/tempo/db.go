package main

import (
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/practice"
	"github.com/benjamonnguyen/puttempo-go/sqlite"
)

// openPractice opens and migrates the session database.
func openPractice(cfg puttempo.Config) (*practice.Service, func(), error) {
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlite.RunMigrations(db); err != nil {
		db.Close() //nolint
		return nil, nil, err
	}

	tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	svc := practice.NewService(sqlite.NewSessionRepo(dbGetter, log.Default()), tx, practice.Bounds{
		MinSeconds: cfg.MinSessionSeconds,
		MaxSeconds: cfg.MaxSessionSeconds,
	}, log.Default())
	return svc, func() { _ = db.Close() }, nil
}
