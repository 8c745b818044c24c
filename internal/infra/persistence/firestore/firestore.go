// Package firestore contains the concrete implementation of the persistence
// layer on Google Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
	"google.golang.org/api/option"

	"muziris/config"
	"muziris/internal/errors"
)

// Collection names. The store is schemaless; these constants are the only
// registry of what exists.
const (
	collectionRequests    = "requests"
	collectionMembers     = "members"
	collectionProfiles    = "profiles"
	collectionUsers       = "users"
	collectionCredentials = "credentials"
	collectionSessions    = "sessions"
	collectionLoginTokens = "login_tokens"
	collectionSpices      = "spices"
	collectionCarts       = "carts"
	collectionOrders      = "orders"
	collectionPayments    = "payments"
	collectionTrail       = "trail"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New creates the Firestore client through the Firebase app.
func New(params Params) (*firestore.Client, error) {
	fsCfg := params.Config.Firestore
	if fsCfg == nil || fsCfg.ProjectID == "" {
		return nil, errors.New("firestore project id must be provided")
	}

	var opts []option.ClientOption
	if fsCfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(fsCfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: fsCfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase app")
	}

	client, err := app.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Logger.Info("Firestore client initialized",
		slog.String("project_id", fsCfg.ProjectID),
	)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}
