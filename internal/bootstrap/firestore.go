package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
)

// InitFirestore opens the preference database. An empty projectID falls back
// to the project detected from the environment or FIRESTORE_EMULATOR_HOST.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return firestore.NewClient(ctx, projectID)
}
