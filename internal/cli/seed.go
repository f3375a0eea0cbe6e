package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/admin"
)

func seedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Загрузить демо-привычки с историей отметок",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := e.svc.Seed(cmd.Context(), LocalUserID)
			if err != nil {
				return fmt.Errorf("не удалось загрузить демо-данные: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Загружено %d %s\n",
				color.New(color.FgGreen).Sprint("✓"), len(created), common.PluralizeHabits(len(created)))
			for _, h := range created {
				fmt.Fprintf(out, "  #%d %s (%s)\n", h.ID, h.Name, h.Cadence)
			}
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "hash-password [password]",
		Short:       "Argon2id-хеш пароля для ADMIN_PASSWORD_HASH",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipDB: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := admin.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
