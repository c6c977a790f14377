package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// subscriptionsCmd represents the subscriptions command group
var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "Manage Pub/Sub subscriptions",
}

var subscriptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions in the configured project",
	RunE:  runSubscriptionsList,
}

func init() {
	rootCmd.AddCommand(subscriptionsCmd)
	subscriptionsCmd.AddCommand(subscriptionsListCmd)

	addListFlags(subscriptionsListCmd)
}

func runSubscriptionsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	subs, token, err := collectPages(ctx, client.ListSubscriptions)
	if err != nil {
		return err
	}

	subs, err = filterResources(subs)
	if err != nil {
		return err
	}

	printResourceList("subscriptions", subs, token)
	return nil
}
