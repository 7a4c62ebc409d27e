package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/dmitrijs2005/coursehub/internal/accountctl"
	"github.com/dmitrijs2005/coursehub/internal/cryptox"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server"
	"github.com/dmitrijs2005/coursehub/internal/server/config"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
)

func main() {

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, accountctl.Usage)
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[2:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, false)

	db, repos, err := server.OpenStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if db != nil {
		defer db.Close()
	}

	hasher := cryptox.NewPasswordHasher(cryptox.DefaultArgon2Params(), int64(runtime.NumCPU()))
	creds := services.NewCredentialStore(hasher, cfg.MinPasswordLength, logger)

	app := accountctl.NewApp(repos.Accounts(db), creds, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, accountctl.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, accountctl.Usage)
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}

}
