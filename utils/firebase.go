package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"bookit/config"
)

// LoadServiceAccount reads and checks a Firebase service account key file.
func LoadServiceAccount(path string) (*config.ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account: %w", err)
	}
	var sa config.ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	if sa.ProjectID == "" || sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, fmt.Errorf("service account %s is missing project_id, client_email or private_key", path)
	}
	return &sa, nil
}

// FirebaseInit initializes the Firebase App and Messaging client.
func FirebaseInit(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	sa, err := LoadServiceAccount(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("firebase: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: sa.ProjectID}, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	return client, nil
}
