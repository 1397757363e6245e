package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/config"
	"github.com/platinummonkey/quill/pkg/storage/sqlstore"
)

// quill-admin mints users and their bearer tokens. The API itself has no
// user management; tokens are pre-issued operationally with this tool and
// handed to callers out of band.
func main() {
	email := flag.String("email", "", "Email of the user to create")
	name := flag.String("name", "", "Name of the user to create")
	token := flag.String("token", "", "Auth token to assign (generated when empty)")
	flag.Parse()

	if *email == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "usage: quill-admin -email <email> -name <name> [-token <token>]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	store, err := sqlstore.New(cfg.Storage)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open storage")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.InitSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to initialize schema")
	}

	authToken := *token
	if authToken == "" {
		authToken, err = auth.NewTokenGenerator().GenerateToken()
		if err != nil {
			logrus.WithError(err).Fatal("failed to generate token")
		}
	}

	user := &auth.User{
		Email:     *email,
		Name:      *name,
		AuthToken: authToken,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		logrus.WithError(err).Fatal("failed to create user")
	}

	logrus.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}).Info("user created")

	// Printed once; the token is never shown again
	fmt.Println(authToken)
}
