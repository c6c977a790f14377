package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvistgaard/pubsubctl/pubsub"
)

var (
	publishData     []string
	publishDataFile string
	publishAttrs    []string
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish TOPIC",
	Short: "Publish messages to a topic",
	Long: `Publish one or more messages to a topic. Each --data flag becomes its
own message; --data-file reads a single message payload from disk.
Attributes given with --attr apply to every message.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringArrayVarP(&publishData, "data", "d", nil, "message payload (repeatable)")
	publishCmd.Flags().StringVar(&publishDataFile, "data-file", "", "read a message payload from file")
	publishCmd.Flags().StringArrayVarP(&publishAttrs, "attr", "a", nil, "message attribute as key=value (repeatable)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	attrs, err := parseAttributes(publishAttrs)
	if err != nil {
		return err
	}

	// The REST API expects base64-encoded payloads; the client itself
	// never touches message contents.
	var messages []pubsub.Message
	for _, data := range publishData {
		messages = append(messages, newMessage([]byte(data), attrs))
	}

	if publishDataFile != "" {
		data, err := os.ReadFile(publishDataFile)
		if err != nil {
			return fmt.Errorf("failed to read data file: %w", err)
		}
		messages = append(messages, newMessage(data, attrs))
	}

	if len(messages) == 0 {
		return fmt.Errorf("no message data provided: use --data or --data-file")
	}

	topicPath := qualifyTopic(args[0])
	resp, err := client.Publish(context.Background(), topicPath, messages)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Published %d message(s) to %s\n", len(messages), topicPath)
	for _, id := range resp.MessageIDs {
		fmt.Printf("  • %s\n", id)
	}
	return nil
}

func newMessage(data []byte, attrs map[string]string) pubsub.Message {
	msg := pubsub.Message{
		"data": base64.StdEncoding.EncodeToString(data),
	}
	if len(attrs) > 0 {
		msg["attributes"] = attrs
	}
	return msg
}

func parseAttributes(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid attribute %q: expected key=value", pair)
		}
		attrs[key] = value
	}
	return attrs, nil
}
