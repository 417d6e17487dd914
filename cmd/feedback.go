package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-framework/agentic-core/internal/feedback"
	"github.com/agentic-framework/agentic-core/internal/presentation"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Track feedback about the workspace tooling",
}

var (
	fbType        string
	fbPriority    string
	fbTags        []string
	fbDescription string
	fbStatus      string
	fbAuthor      string
)

func newFeedbackStore() *feedback.Store {
	return feedback.NewStore(cfg.FeedbackPath)
}

var feedbackSubmitCmd = &cobra.Command{
	Use:   "submit <title>",
	Short: "Submit a feedback item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := newFeedbackStore().Submit(
			feedback.Type(fbType), args[0], fbDescription,
			feedback.Priority(fbPriority), fbTags)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted feedback %s\n", item.ID)
		return nil
	},
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback items",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := newFeedbackStore().List(feedback.Status(fbStatus))
		if err != nil {
			return err
		}
		presentation.NewFormatter(os.Stdout).FormatFeedbackItems(items)
		return nil
	},
}

var feedbackGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a feedback item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := newFeedbackStore().Get(args[0])
		if err != nil {
			return err
		}
		presentation.NewFormatter(os.Stdout).FormatFeedbackItem(item)
		return nil
	},
}

var feedbackUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a feedback item's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fbStatus == "" {
			return fmt.Errorf("--status is required")
		}
		item, err := newFeedbackStore().UpdateStatus(args[0], feedback.Status(fbStatus))
		if err != nil {
			return err
		}
		fmt.Printf("Feedback %s is now %s\n", item.ID, item.Status)
		return nil
	},
}

var feedbackCommentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Comment on a feedback item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := newFeedbackStore().Comment(args[0], fbAuthor, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Added comment to %s\n", item.ID)
		return nil
	},
}

func init() {
	feedbackSubmitCmd.Flags().StringVar(&fbType, "type", string(feedback.TypeIssue), "feedback type: issue, improvement, question, other")
	feedbackSubmitCmd.Flags().StringVar(&fbPriority, "priority", string(feedback.PriorityMedium), "priority: low, medium, high, critical")
	feedbackSubmitCmd.Flags().StringVar(&fbDescription, "description", "", "longer description")
	feedbackSubmitCmd.Flags().StringArrayVar(&fbTags, "tag", nil, "tag (repeatable)")

	feedbackListCmd.Flags().StringVar(&fbStatus, "status", "", "filter by status")
	feedbackUpdateCmd.Flags().StringVar(&fbStatus, "status", "", "new status: new, in_progress, resolved, closed, rejected")
	feedbackCommentCmd.Flags().StringVar(&fbAuthor, "author", "operator", "comment author")

	feedbackCmd.AddCommand(feedbackSubmitCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackGetCmd)
	feedbackCmd.AddCommand(feedbackUpdateCmd)
	feedbackCmd.AddCommand(feedbackCommentCmd)
	rootCmd.AddCommand(feedbackCmd)
}
