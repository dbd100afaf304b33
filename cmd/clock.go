package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/auth"
	"github.com/frahmantamala/timeclock/internal/timetracking"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Clock in or out from the terminal",
	Long:  `Sign in and record the opposite of the last clock event of today, exactly like the dashboard button`,
	Run: func(cmd *cobra.Command, args []string) {
		runClock()
	},
}

var (
	clockUsername    string
	clockPassword    string
	clockDescription string
)

func runClock() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.LoggerWrapper()

	if clockPassword == "" {
		clockPassword = os.Getenv("TIMECLOCK_PASSWORD")
	}

	client, err := newUpstreamClient(config, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create upstream client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := internal.WithTimeout(context.Background(), config.Upstream.Timeout)
	defer cancel()

	token, err := client.Login(ctx, clockUsername, clockPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not sign in: %s\n", apiclient.Message(err))
		os.Exit(1)
	}
	if token.AccessToken == "" {
		fmt.Fprintln(os.Stderr, internal.ErrMissingAccessToken.Message)
		os.Exit(1)
	}

	claims, err := auth.NewTokenDecoder(config.Security.JWTSecret).Decode(token.AccessToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read token: %v\n", err)
		os.Exit(1)
	}

	ctx = apiclient.WithToken(ctx, token.AccessToken)
	ctx = internal.ContextWithUserID(ctx, claims.Subject)

	record, err := timetracking.NewService(client, config.App.Location(), lg).Toggle(ctx, clockDescription)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not record clock event: %s\n", apiclient.Message(err))
		os.Exit(1)
	}
	fmt.Printf("%s recorded for %s\n", record.RecordType, clockUsername)
}

func init() {
	clockCmd.Flags().StringVarP(&clockUsername, "username", "u", "", "Username to sign in with")
	clockCmd.Flags().StringVarP(&clockPassword, "password", "p", "", "Password (defaults to $TIMECLOCK_PASSWORD)")
	clockCmd.Flags().StringVarP(&clockDescription, "description", "d", "", "Optional note for the record")
	_ = clockCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(clockCmd)
}
