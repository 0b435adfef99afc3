// Package commands implements the CLI for talking to a serverless inference
// endpoint directly, without going through the HTTP API.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/runpod"
)

// flag names
const (
	flagEndpointID = "endpoint-id"
	flagAPIKey     = "api-key"
	flagBaseURL    = "base-url"
)

// environment variable names
const (
	envEndpointID = "RUNPOD_ENDPOINT_ID"
	envAPIKey     = "RUNPOD_API_KEY"
	envBaseURL    = "RUNPOD_BASE_URL"
)

var (
	// client is the shared serverless client instance
	client *runpod.Client

	endpointID string
	apiKey     string
	baseURL    string
)

// initClient initializes the serverless client
func initClient() error {
	opts := runpod.DefaultOptions()
	opts.EndpointID = endpointID
	opts.APIKey = apiKey
	if baseURL != "" {
		opts.BaseURL = baseURL
	}

	var err error
	client, err = runpod.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVar(&endpointID, flagEndpointID, "", "Serverless endpoint id (env: RUNPOD_ENDPOINT_ID)")
	RootCmd.PersistentFlags().StringVar(&apiKey, flagAPIKey, "", "Serverless API key (env: RUNPOD_API_KEY)")
	RootCmd.PersistentFlags().StringVar(&baseURL, flagBaseURL, "", "Serverless API base URL (env: RUNPOD_BASE_URL)")

	RootCmd.AddCommand(GetEndpointCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sunbird",
	Short: "Sunbird CLI - run inference jobs against a serverless endpoint",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > env var precedence for every credential.
		if !cmd.Flags().Changed(flagEndpointID) {
			endpointID = os.Getenv(envEndpointID)
		}
		if !cmd.Flags().Changed(flagAPIKey) {
			apiKey = os.Getenv(envAPIKey)
		}
		if !cmd.Flags().Changed(flagBaseURL) {
			baseURL = os.Getenv(envBaseURL)
		}

		if endpointID == "" {
			return fmt.Errorf("endpoint id cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
