package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rahulj/polypost/internal/config"
	"github.com/rahulj/polypost/internal/server"
	"github.com/rahulj/polypost/internal/server/middleware"
)

var (
	tokenUserID string
	tokenScopes []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for calling the protected API endpoints",
	Long:  `Generates a bearer token signed with JWT_SECRET. Pass it in the Authorization header when calling the publish, collect, and analyze endpoints.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "User UUID to embed in the token (defaults to a fresh UUID)")
	tokenCmd.Flags().StringSliceVar(&tokenScopes, "scopes", []string{middleware.ScopePublish, middleware.ScopeAnalytics}, "Scopes to grant (publish, analytics)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	userID := uuid.New()
	if tokenUserID != "" {
		userID, err = uuid.Parse(tokenUserID)
		if err != nil {
			return fmt.Errorf("invalid user UUID: %w", err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(userID, tokenScopes)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
