package db

import "log/slog"

// LogValue satisfies [slog.LogValuer]. The password hash is never logged.
func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", u.ID),
		slog.String("name", u.Name),
	)
}
