package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	endpointCmd.AddCommand(runJobCmd)
	endpointCmd.AddCommand(jobStatusCmd)
	endpointCmd.AddCommand(cancelJobCmd)

	// Add flags
	runJobCmd.Flags().StringP("input", "i", "", "Job input payload as a JSON object")
	runJobCmd.Flags().DurationP("timeout", "t", 0, "Primary wait for job output (default: client default)")
	_ = runJobCmd.MarkFlagRequired("input")

	jobStatusCmd.Flags().StringP("id", "i", "", "Job ID to fetch")
	_ = jobStatusCmd.MarkFlagRequired("id")

	cancelJobCmd.Flags().StringP("id", "i", "", "Job ID to cancel")
	_ = cancelJobCmd.MarkFlagRequired("id")
}

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Run and inspect jobs on the configured endpoint",
}

var runJobCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit a job and wait for its result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(input), &payload); err != nil {
			return fmt.Errorf("invalid input payload: %w", err)
		}

		result, _, err := client.RunJob(context.Background(), payload, timeout)
		if err != nil {
			return fmt.Errorf("error running job: %w", err)
		}

		// Pretty print the response
		prettyJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var jobStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch the raw status document of a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetString("id")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		details := client.Details(ctx, jobID)

		prettyJSON, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var cancelJobCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a running job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetString("id")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.CancelJob(ctx, jobID); err != nil {
			return fmt.Errorf("error cancelling job: %w", err)
		}
		fmt.Println("cancel requested")
		return nil
	},
}

// GetEndpointCmd returns the endpoint command
func GetEndpointCmd() *cobra.Command {
	return endpointCmd
}
