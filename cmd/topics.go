package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvistgaard/pubsubctl/filter"
	"github.com/kvistgaard/pubsubctl/pubsub"
)

var (
	// Shared list flags
	listPageSize  int
	listPageToken string
	listAll       bool
	filterExpr    string

	noConfirm bool
)

// topicsCmd represents the topics command group
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage Pub/Sub topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics in the configured project",
	RunE:  runTopicsList,
}

var topicsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsCreate,
}

var topicsGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show a topic resource as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsGet,
}

var topicsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsDelete,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsCreateCmd)
	topicsCmd.AddCommand(topicsGetCmd)
	topicsCmd.AddCommand(topicsDeleteCmd)

	addListFlags(topicsListCmd)
	topicsDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&listPageSize, "page-size", 0, "maximum resources per page (server default when 0)")
	cmd.Flags().StringVar(&listPageToken, "page-token", "", "opaque token for the next page")
	cmd.Flags().BoolVar(&listAll, "all", false, "follow page tokens until the last page")
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'shortName endsWith \"-dev\"'")
}

// listFunc is the shape shared by the two list endpoints.
type listFunc func(ctx context.Context, project string, opts pubsub.ListOptions) ([]pubsub.Resource, string, error)

// collectPages fetches one page, or every remaining page when --all is
// set. The returned token is "" once the listing is exhausted.
func collectPages(ctx context.Context, list listFunc) ([]pubsub.Resource, string, error) {
	opts := pubsub.ListOptions{PageSize: listPageSize, PageToken: listPageToken}

	var all []pubsub.Resource
	for {
		page, token, err := list(ctx, cfg.Project, opts)
		if err != nil {
			return nil, "", err
		}
		all = append(all, page...)

		if !listAll || token == "" {
			return all, token, nil
		}
		opts.PageToken = token
	}
}

// filterResources applies --filter when given.
func filterResources(resources []pubsub.Resource) ([]pubsub.Resource, error) {
	if filterExpr == "" {
		return resources, nil
	}

	f, err := filter.Compile(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	var matched []pubsub.Resource
	for _, res := range resources {
		name := res.Name()
		ok, err := f.Match(filter.Entry{
			Name:      name,
			ShortName: filter.ShortName(name),
			Project:   cfg.Project,
		})
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

func printResourceList(kind string, resources []pubsub.Resource, nextPageToken string) {
	if len(resources) == 0 {
		fmt.Printf("No %s found.\n", kind)
		return
	}

	fmt.Printf("Found %d %s:\n", len(resources), kind)
	fmt.Println(strings.Repeat("-", 60))
	for _, res := range resources {
		fmt.Printf("• %s\n", res.Name())
	}

	if nextPageToken != "" {
		fmt.Printf("\nMore results available. Next page token: %s\n", nextPageToken)
	}
}

// qualifyTopic joins a short topic ID with the configured project;
// fully-qualified paths pass through unchanged.
func qualifyTopic(name string) string {
	if strings.HasPrefix(name, "projects/") {
		return name
	}
	return pubsub.TopicPath(cfg.Project, name)
}

func runTopicsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	topics, token, err := collectPages(ctx, client.ListTopics)
	if err != nil {
		return err
	}

	topics, err = filterResources(topics)
	if err != nil {
		return err
	}

	printResourceList("topics", topics, token)
	return nil
}

func runTopicsCreate(cmd *cobra.Command, args []string) error {
	topicPath := qualifyTopic(args[0])

	topic, err := client.CreateTopic(context.Background(), topicPath)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created topic %s\n", topic.Name())
	return nil
}

func runTopicsGet(cmd *cobra.Command, args []string) error {
	topic, err := client.GetTopic(context.Background(), qualifyTopic(args[0]))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(topic, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format topic: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runTopicsDelete(cmd *cobra.Command, args []string) error {
	topicPath := qualifyTopic(args[0])

	if !noConfirm {
		fmt.Printf("Delete topic %s? [y/N]: ", topicPath)
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := client.DeleteTopic(context.Background(), topicPath); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted topic %s\n", topicPath)
	return nil
}
