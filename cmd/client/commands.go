package main

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/todosync/internal/client/cli"
)

func newTokenCmd(s *session, flags *globalFlags) *cobra.Command {
	var encrypt bool
	cmd := &cobra.Command{
		Use:   "token [TOKEN]",
		Short: "Save the access token issued by the server",
		Example: `
  todosync token eyJhbGciOi...
  todosync token --encrypt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token, passphrase string
			if len(args) == 1 {
				token = args[0]
			}
			if encrypt {
				var err error
				passphrase, err = cli.ReadPassphrase(s.io, cli.Passphrases{
					FromFile: flags.passphraseFile,
					FromArgs: flags.passphrase,
				}, true)
				if err != nil {
					return err
				}
			}
			return s.cli.RunToken(cmd.Context(), token, passphrase)
		},
	}
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "store the token encrypted with a passphrase")
	return cmd
}

func newLogoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunLogout(cmd.Context())
		},
	}
}

func newStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show token and synchronization status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunStatus(cmd.Context())
		},
	}
}

func newAddCmd(s *session) *cobra.Command {
	var in cli.TodoInput
	cmd := &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Add a todo",
		Example: `
  todosync add "Buy milk" --priority high --due 2026-11-01
  todosync add`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.Title = args[0]
			}
			return s.cli.RunAdd(cmd.Context(), in)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&in.Description, "description", "d", "", "todo description")
	f.StringVarP(&in.Priority, "priority", "p", "", "priority: low, medium or high")
	f.StringVar(&in.DueDate, "due", "", "due date, YYYY-MM-DD")
	return cmd
}

func newUpdateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID FIELD VALUE",
		Short: "Change one field of a todo",
		Example: `
  todosync update 42 title "Buy oat milk"
  todosync update 42 completed true`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunUpdate(cmd.Context(), args[0], args[1], args[2])
		},
	}
}

func newDoneCmd(s *session) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a todo as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunComplete(cmd.Context(), args[0], !undo)
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark the todo as not completed")
	return cmd
}

func newDeleteCmd(s *session) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunDelete(cmd.Context(), args[0], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")
	return cmd
}

func newListCmd(s *session) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunList(cmd.Context(), all)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed todos")
	return cmd
}

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show todo details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunGet(cmd.Context(), args[0])
		},
	}
}

func newSyncCmd(s *session) *cobra.Command {
	var retryFailed bool
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s"},
		Short:   "Sync local changes with the server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunSync(cmd.Context(), retryFailed)
		},
	}
	cmd.Flags().BoolVar(&retryFailed, "retry-failed", false, "requeue changes the server rejected permanently")
	return cmd
}

// newRecordsCmd команды общих списков и комментариев
func newRecordsCmd(s *session, use, short, collection string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.cli.RunRecordList(cmd.Context(), collection)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add KEY=VALUE...",
			Short: "Create a record",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.cli.RunRecordAdd(cmd.Context(), collection, args)
			},
		},
		&cobra.Command{
			Use:   "update ID KEY=VALUE...",
			Short: "Change record fields",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.cli.RunRecordUpdate(cmd.Context(), collection, args[0], args[1:])
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.cli.RunRecordDelete(cmd.Context(), collection, args[0])
			},
		},
	)
	return cmd
}
