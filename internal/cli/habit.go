package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"serotonyl.ru/habit-tracker/internal/features/habits"
)

func habitCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Управление привычками",
	}
	cmd.AddCommand(habitAddCmd(e))
	cmd.AddCommand(habitListCmd(e))
	cmd.AddCommand(habitDeleteCmd(e))
	return cmd
}

func habitAddCmd(e *env) *cobra.Command {
	var cadence, description string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Создать привычку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := e.svc.Create(cmd.Context(), habits.NewHabit{
				UserID:      LocalUserID,
				Name:        args[0],
				Cadence:     cadence,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("не удалось создать привычку: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Создана привычка #%d: %s (%s)\n",
				color.New(color.FgGreen).Sprint("✓"), h.ID, h.Name, h.Cadence)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cadence, "cadence", "c", "daily", "периодичность: daily, weekly, monthly")
	cmd.Flags().StringVarP(&description, "description", "d", "", "описание")
	return cmd
}

func habitListCmd(e *env) *cobra.Command {
	var cadence string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список привычек",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				list []*habits.Habit
				err  error
			)
			if cadence != "" {
				list, err = e.svc.ListByCadence(cmd.Context(), LocalUserID, cadence)
			} else {
				list, err = e.svc.List(cmd.Context(), LocalUserID)
			}
			if err != nil {
				return fmt.Errorf("не удалось получить список: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "Привычек нет. Создайте: habitctl habit add <name> --cadence daily")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tПЕРИОД\tСОЗДАНА\tОПИСАНИЕ")
			for _, h := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					h.ID, h.Name, h.Cadence, h.CreatedAt.In(e.loc).Format("2006-01-02"), h.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&cadence, "cadence", "c", "", "только привычки с этой периодичностью")
	return cmd
}

func habitDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить привычку вместе с отметками",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.svc.Delete(cmd.Context(), LocalUserID, id); err != nil {
				return fmt.Errorf("не удалось удалить привычку: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Привычка #%d удалена\n", color.New(color.FgGreen).Sprint("✓"), id)
			return nil
		},
	}
}
