package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/habits"
	"serotonyl.ru/habit-tracker/internal/features/streak"
)

func checkoffCmd(e *env) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "checkoff [id]",
		Short: "Отметить выполнение привычки",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var r *habits.Report
			if at != "" {
				t, err := e.parseAt(at)
				if err != nil {
					return err
				}
				r, err = e.svc.CheckoffAt(cmd.Context(), LocalUserID, id, t)
				if err != nil {
					return fmt.Errorf("не удалось отметить: %w", err)
				}
			} else {
				r, err = e.svc.Checkoff(cmd.Context(), LocalUserID, id)
				if err != nil {
					return fmt.Errorf("не удалось отметить: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s: серия %s, %s\n",
				color.New(color.FgGreen).Sprint("✓"), r.Habit.ID, r.Habit.Name,
				common.FormatPeriods(r.Current.Count, r.Habit.Cadence), statusLabel(r.Current.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "время отметки: \"2006-01-02 15:04:05\" или 2006-01-02")
	return cmd
}

func streakCmd(e *env) *cobra.Command {
	var maximum bool

	cmd := &cobra.Command{
		Use:   "streak [id]",
		Short: "Текущая (или лучшая, --max) серия привычки",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			h, err := e.svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if h.UserID != LocalUserID {
				return common.ErrNotHabitOwner
			}

			mode := streak.Current
			if maximum {
				mode = streak.Maximum
			}
			res, err := e.svc.CalculateStreak(cmd.Context(), id, mode)
			if err != nil {
				return err
			}

			label := "Текущая серия"
			if maximum {
				label = "Лучшая серия"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n  %s: %s\n  Последняя отметка: %s\n",
				h.ID, h.Name, label, common.FormatPeriods(res.Count, h.Cadence), statusLabel(res.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&maximum, "max", false, "показать лучшую серию за всё время")
	return cmd
}

func longestCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "longest",
		Short: "Самая длинная серия среди всех привычек",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.svc.AggregateLongestStreak(cmd.Context(), LocalUserID)
			if err != nil {
				return err
			}
			printLongest(cmd, e, res)
			return nil
		},
	}
}

// reportCmd считает отчёт по каждой привычке с прогресс-баром: на большой истории это заметно.
func reportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Серии по всем привычкам и общий рекорд",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			list, err := e.svc.List(ctx, LocalUserID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "Привычек нет. Создайте: habitctl habit add <name> --cadence daily")
				return nil
			}

			bar := progressbar.NewOptions(len(list),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("Расчёт серий"),
				progressbar.OptionClearOnFinish(),
			)

			reports := make([]*habits.Report, 0, len(list))
			var failed []string
			for _, h := range list {
				r, err := e.svc.Report(ctx, h.ID)
				if err != nil {
					failed = append(failed, fmt.Sprintf("#%d %s: %v", h.ID, h.Name, err))
				} else {
					reports = append(reports, r)
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tПЕРИОД\tТЕКУЩАЯ\tЛУЧШАЯ\tОТМЕТОК\tСТАТУС")
			for _, r := range reports {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.Habit.ID, r.Habit.Name, r.Habit.Cadence,
					r.Current.Count, r.Longest, r.Checkoffs, statusLabel(r.Current.Status))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, f := range failed {
				fmt.Fprintf(out, "%s %s\n", color.New(color.FgRed).Sprint("!"), f)
			}

			res, err := e.svc.AggregateLongestStreak(ctx, LocalUserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			printLongest(cmd, e, res)
			return nil
		},
	}
}

func printLongest(cmd *cobra.Command, e *env, res streak.AggregateResult) {
	out := cmd.OutOrStdout()
	if len(res.HabitIDs) == 0 {
		fmt.Fprintln(out, "Рекорд: 0 (отметок нет)")
		return
	}

	names := make([]string, 0, len(res.HabitIDs))
	for _, id := range res.HabitIDs {
		if h, err := e.svc.Get(cmd.Context(), id); err == nil {
			names = append(names, fmt.Sprintf("#%d %s", h.ID, h.Name))
		} else {
			names = append(names, fmt.Sprintf("#%d", id))
		}
	}
	fmt.Fprintf(out, "Рекорд: %s (%s)\n",
		color.New(color.Bold).Sprint(res.MaxStreak), strings.Join(names, ", "))
}

// statusLabel — статус последней отметки с цветом.
func statusLabel(st streak.Status) string {
	switch st {
	case streak.StatusCompleted:
		return color.New(color.FgGreen).Sprint(st.String())
	case streak.StatusAlreadyLogged:
		return color.New(color.FgYellow).Sprint(st.String())
	case streak.StatusBroken:
		return color.New(color.FgRed).Sprint(st.String())
	}
	return color.New(color.Faint).Sprint(st.String())
}
