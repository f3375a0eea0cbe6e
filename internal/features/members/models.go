// Package members ведёт реестр пользователей бота.
// models.go описывает структуры данных для работы с таблицей members.
package members

import "time"

// Member — пользователь бота. Создаётся автоматически при первом сообщении
// или при вступлении в разрешённый групповой чат.
type Member struct {
	ID        int64     `db:"id"`         // Автоинкрементный ID записи в БД
	UserID    int64     `db:"user_id"`    // Telegram user ID (уникальный)
	Username  string    `db:"username"`   // @username (может быть пустым)
	FirstName string    `db:"first_name"` // Имя пользователя
	LastName  string    `db:"last_name"`  // Фамилия (может быть пустой)
	IsBanned  bool      `db:"is_banned"`  // Забаненным бот не отвечает
	JoinedAt  time.Time `db:"joined_at"`  // Когда впервые написал боту
	UpdatedAt time.Time `db:"updated_at"` // Последнее обновление записи
}

// UpdateInfo содержит данные для обновления информации о пользователе.
// Имя и username в Telegram могут меняться, обновляем при каждом EnsureMember.
type UpdateInfo struct {
	Username  string
	FirstName string
	LastName  string
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть @username — возвращает его, иначе — имя + фамилию.
func (m *Member) DisplayName() string {
	if m.Username != "" {
		return "@" + m.Username
	}
	name := m.FirstName
	if m.LastName != "" {
		name += " " + m.LastName
	}
	return name
}
