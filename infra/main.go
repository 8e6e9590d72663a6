package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/pbx-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/pbx-dashboard/infra/docker"
	"github.com/GregMSThompson/pbx-dashboard/infra/firestore"
	"github.com/GregMSThompson/pbx-dashboard/infra/identity"
	"github.com/GregMSThompson/pbx-dashboard/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service so the dashboard can verify firebase tokens
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore and create the database holding dashboard preferences
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
