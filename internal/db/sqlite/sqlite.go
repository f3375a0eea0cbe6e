// Package sqlite — локальное хранилище привычек для habitctl и тестов.
// Одна база в файле (~/.habitctl/habits.db по умолчанию), схема создаётся при открытии.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// MemoryPath — база в памяти, живёт пока открыт *sql.DB.
const MemoryPath = ":memory:"

// Schema — схема локальной базы. Отметки хранятся строками в формате хранилища,
// порядок добавления задаёт id.
const Schema = `
CREATE TABLE IF NOT EXISTS habits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    cadence TEXT NOT NULL CHECK (cadence IN ('daily', 'weekly', 'monthly')),
    description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits(user_id);

CREATE TABLE IF NOT EXISTS habit_checkoffs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    habit_id INTEGER NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    checked_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habit_checkoffs_habit_id ON habit_checkoffs(habit_id);
`

// DefaultPath возвращает ~/.habitctl/habits.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("не удалось определить домашний каталог: %w", err)
	}
	return filepath.Join(home, ".habitctl", "habits.db"), nil
}

// Open открывает (и при необходимости создаёт) базу по пути path и применяет схему.
//
// Параметры:
//   - path: путь к файлу или MemoryPath
//
// Пример:
//
//	db, err := sqlite.Open(sqlite.MemoryPath)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func Open(path string) (*sql.DB, error) {
	dsn := "file::memory:?_foreign_keys=on"
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог базы: %w", err)
		}
		dsn = "file:" + path + "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу: %w", err)
	}
	// SQLite пишет в один поток, а база в памяти существует только внутри своего соединения
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка создания схемы: %w", err)
	}

	log.WithField("path", path).Debug("SQLite-база открыта")
	return db, nil
}
