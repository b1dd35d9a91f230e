package command

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/justrob12/seclab/internal/content"
	"github.com/justrob12/seclab/internal/pagination"
	"github.com/justrob12/seclab/internal/sec"
	"github.com/justrob12/seclab/internal/storage"
	"github.com/justrob12/seclab/internal/storage/db"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
		userDeleteCommand(),
		userLookupCommand(),
		userLoginCommand(),
		userListCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create user",
		Long: "Creates user entry for the provided username and password. Passwords may be\n" +
			"provided via stdin or through the interactive prompt.",

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			hasher, err := cfg.Hasher()
			if err != nil {
				return err
			}

			name := args[0]
			passwd, err := promptSecret(cmd, "password: ")
			if err != nil {
				return err
			}
			hash, err := hasher.Hash(passwd)
			if err != nil {
				return err
			}
			user, err := store.UpsertUser(cmd.Context(), db.User{
				Name:         name,
				PasswordHash: hash,
			})
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created user", slog.Any("user", user))
			return nil
		},
	}
}

func userDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete user",
		Long: "Permanently deletes the user and their credentials. " +
			"This operation is permanent and irreversible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			name := args[0]
			logger = logger.With(slog.String("name", name))
			user, err := store.GetUserByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			resp, err := prompt(cmd, "Are you sure you want to delete this user? [y|N] ", false)
			if !bytes.Equal(resp, []byte{'y'}) || err != nil {
				logger.InfoContext(cmd.Context(), "aborted user deletion")
				return err
			}
			if err = store.DeleteUser(cmd.Context(), user.ID); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "user deleted")
			return nil
		},
	}
}

func userLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup NAME",
		Short: "Look up a user by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			user, err := store.GetUserByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			// stored values are untrusted wherever they end up
			name := content.EncodeForHTMLBody(user.Name)
			logger.InfoContext(cmd.Context(), "found user", slog.String("name", string(name)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
}

func userLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login NAME",
		Short: "Check a user's password",
		Long: "Verifies the password for NAME. If the stored digest uses outdated\n" +
			"hashing parameters it is upgraded in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			hasher, err := cfg.Hasher()
			if err != nil {
				return err
			}

			passwd, err := promptSecret(cmd, "password: ")
			if err != nil {
				return err
			}
			rehash := sec.NewSecret(passwd)
			defer rehash.Zero()

			user, err := sec.Login(cmd.Context(), store, args[0], passwd)
			if err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "login succeeded", slog.Any("user", user))

			if !hasher.NeedsRehash(user.PasswordHash) {
				return nil
			}
			if user.PasswordHash, err = hasher.Hash(rehash); err != nil {
				return err
			}
			if _, err = store.UpsertUser(cmd.Context(), user); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "upgraded password digest",
				slog.String("algorithm", string(hasher.Algorithm)))
			return nil
		},
	}
}

func userListCommand() *cobra.Command {
	var (
		pageSize  int32
		pageToken string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, _, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()
			return listUsers(cmd, store, pageToken, pageSize)
		},
	}
	cmd.Flags().Int32Var(&pageSize, "page-size", defaultPageSize, "maximum number of users to print")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "token from a previous page")
	return cmd
}

// Page size bounds for user list.
const (
	defaultPageSize int32 = 50
	maxPageSize     int32 = 1000
)

func listUsers(cmd *cobra.Command, store storage.Users, pageToken string, pageSize int32) error {
	var cursor storage.UserCursor
	if pageToken != "" {
		if err := pagination.FromToken(pageToken, &cursor); err != nil {
			return err
		}
	}
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	// one extra row tells us whether another page exists
	users, err := store.ListUsers(cmd.Context(), cursor.AfterName, pageSize+1)
	if err != nil {
		return err
	}
	more := len(users) > int(pageSize)
	if more {
		users = users[:pageSize]
	}

	out := cmd.OutOrStdout()
	for _, user := range users {
		if _, err = fmt.Fprintln(out, content.EncodeForHTMLBody(user.Name)); err != nil {
			return err
		}
	}
	if !more {
		return nil
	}
	next, err := pagination.ToToken(&storage.UserCursor{AfterName: users[len(users)-1].Name})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "next page token: %s\n", next)
	return err
}
