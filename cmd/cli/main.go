package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/otsbank/bankcore/internal/infrastructure/config"
	"github.com/otsbank/bankcore/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankcore-cli",
		Short: "Bankcore CLI tool",
		Long:  `A command line interface for operating the Bankcore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bankcore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	// Cache commands
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Country cache operations",
	}

	cacheReadCmd := &cobra.Command{
		Use:   "read [tier]",
		Short: "Read the country collection through a cache tier (memory or redis)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			readCountries(args[0])
		},
	}

	cacheCmd.AddCommand(cacheReadCmd)
	rootCmd.AddCommand(cacheCmd)

	// Health command
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service readiness",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}

	rootCmd.AddCommand(healthCmd)

	// Ledger commands
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post ledger transactions",
	}

	var (
		amount      string
		fee         string
		description string
		reference   string
	)

	postIncomingCmd := &cobra.Command{
		Use:   "incoming [account-id]",
		Short: "Post an incoming transaction against an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postTransaction(args[0], "incoming", map[string]any{
				"amount":           amount,
				"description":      description,
				"reference_number": reference,
			})
		},
	}

	postOutgoingCmd := &cobra.Command{
		Use:   "outgoing [account-id]",
		Short: "Post an outgoing transaction against an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postTransaction(args[0], "outgoing", map[string]any{
				"amount":           amount,
				"fee_amount":       fee,
				"description":      description,
				"reference_number": reference,
			})
		},
	}

	for _, c := range []*cobra.Command{postIncomingCmd, postOutgoingCmd} {
		c.Flags().StringVar(&amount, "amount", "", "Transaction amount")
		c.Flags().StringVar(&description, "description", "", "Transaction description")
		c.Flags().StringVar(&reference, "reference", "", "Reference number")
	}

	postOutgoingCmd.Flags().StringVar(&fee, "fee", "0", "Fee amount")

	postCmd.AddCommand(postIncomingCmd, postOutgoingCmd)
	rootCmd.AddCommand(postCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func readCountries(tier string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/countries?cache=" + tier)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var countries []map[string]any
	if err := json.Unmarshal(body, &countries); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Active countries (%d):\n", len(countries))
	for _, c := range countries {
		fmt.Printf("  %s  %s\n", c["iso_code"], c["name"])
	}
}

func postTransaction(accountID, direction string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	url := fmt.Sprintf("%s/api/v1/accounts/%s/transactions/%s", baseURL, accountID, direction)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	fmt.Printf("Transaction posted\nResponse: %s\n", string(respBody))
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/ready")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Readiness check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Readiness check PASSED\nResponse: %s\n", string(body))
}
