// Package cli — команды habitctl: локальный трекер привычек поверх SQLite.
// Все привычки принадлежат одному локальному пользователю (LocalUserID).
package cli

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/config"
	"serotonyl.ru/habit-tracker/internal/db/sqlite"
	"serotonyl.ru/habit-tracker/internal/features/habits"
)

// LocalUserID — владелец всех привычек в локальной базе.
const LocalUserID int64 = 1

// skipDB — аннотация команд, которым база не нужна.
const skipDB = "habitctl/skip-db"

// env — общее состояние команд одного запуска.
type env struct {
	dbPath string
	db     *sql.DB
	svc    *habits.Service
	loc    *time.Location
	layout string
}

// NewRootCmd собирает дерево команд habitctl.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{})
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "habitctl",
		Short: "Локальный трекер привычек",
		Long: `habitctl ведёт привычки и отметки в локальной SQLite-базе
и считает по ним серии: текущую, лучшую и общий рекорд.

База: --db, HABITCTL_DB_PATH или ~/.habitctl/habits.db.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipDB] == "true" || e.svc != nil {
				return nil
			}
			return e.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.db == nil {
				return nil
			}
			err := e.db.Close()
			e.db, e.svc = nil, nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&e.dbPath, "db", "", "путь к базе (по умолчанию HABITCTL_DB_PATH или ~/.habitctl/habits.db)")

	root.AddCommand(habitCmd(e))
	root.AddCommand(checkoffCmd(e))
	root.AddCommand(streakCmd(e))
	root.AddCommand(longestCmd(e))
	root.AddCommand(reportCmd(e))
	root.AddCommand(seedCmd(e))
	root.AddCommand(hashPasswordCmd())

	return root
}

// open читает конфигурацию, открывает базу и собирает сервис привычек.
func (e *env) open() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return err
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	loc, err := common.LoadLocation(cfg.AppTimezone)
	if err != nil {
		return err
	}
	common.SetLocation(loc)

	path := e.dbPath
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		if path, err = sqlite.DefaultPath(); err != nil {
			return err
		}
	}

	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}

	e.db = db
	e.loc = loc
	e.layout = cfg.StreakTimeLayout
	e.svc = habits.NewService(sqlite.NewHabitStore(db), cfg.StreakConfig.Options(loc))
	return nil
}

// parseID понимает "5" и "#5".
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный id привычки %q", s)
	}
	return id, nil
}

// parseAt разбирает --at: полный формат хранилища или только дата (полдень).
func (e *env) parseAt(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(e.layout, s, e.loc); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", s, e.loc); err == nil {
		return d.Add(12 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("некорректное время %q: ожидается %q или 2006-01-02", s, e.layout)
}
