package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/brainbox/internal/repository"
	"github.com/templui/brainbox/internal/service"
)

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <email>",
		Short: "Print a bearer token for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			users := service.NewUserService(repository.NewUserRepository(database))
			user, err := users.ByEmail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to find %s: %w", args[0], err)
			}

			token, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry).Issue(user.ID)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}
}
