package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/pbx-dashboard/internal/errs"
)

// preferenceDoc is one key of a user's durable key-value namespace.
type preferenceDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type preferenceStore struct {
	client *firestore.Client
}

// NewPreferenceStore returns a Firestore backed key-value store. Each namespace
// is a user id and each key a document under users/{uid}/preferences.
func NewPreferenceStore(client *firestore.Client) *preferenceStore {
	return &preferenceStore{client: client}
}

func (s *preferenceStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("preferences")
}

func (s *preferenceStore) Get(ctx context.Context, uid, key string) ([]byte, error) {
	doc, err := s.collection(uid).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("preference not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get preference", err)
	}
	var p preferenceDoc
	if err := doc.DataTo(&p); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse preference data", err)
	}
	return []byte(p.Value), nil
}

func (s *preferenceStore) Set(ctx context.Context, uid, key string, value []byte) error {
	_, err := s.collection(uid).Doc(key).Set(ctx, preferenceDoc{
		Value:     string(value),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save preference", err)
	}
	return nil
}
