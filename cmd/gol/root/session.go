package root

import (
	"context"
	"errors"
	"os/user"

	"github.com/spf13/viper"

	"gamelife/internal/config"
	"gamelife/internal/engine"
	"gamelife/internal/storage"
)

// openSession opens the database, loads config, and logs the user in.
// The username comes from --user /
// GAMELIFE_USER, falling back to the OS account name.
func openSession(ctx context.Context) (*engine.Service, func(), error) {
	username := viper.GetString("user")
	if username == "" {
		if u, err := user.Current(); err == nil {
			username = u.Username
		}
	}
	if username == "" {
		return nil, nil, errors.New("username is required (--user or GAMELIFE_USER)")
	}

	cfgPath := viper.GetString("config")
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := storage.ResolveDBPath(viper.GetString("db"))
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = db.Close() }

	svc := engine.NewService(db, cfg.Engine())
	if err := svc.Login(ctx, username, viper.GetString("email")); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
