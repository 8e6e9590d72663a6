package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupFirestore enables Firestore and creates the native-mode database that
// holds users/{uid}/preferences documents.
func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) error {
	svc, err := projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return err
	}

	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	_, err = firestore.NewDatabase(ctx, "preferencesDatabase", &firestore.DatabaseArgs{
		Name:                  pulumi.String("(default)"),
		Project:               pulumi.String(projectID),
		LocationId:            pulumi.String(region),
		Type:                  pulumi.String("FIRESTORE_NATIVE"),
		DeleteProtectionState: pulumi.String("DELETE_PROTECTION_ENABLED"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{svc}),
	)
	return err
}
