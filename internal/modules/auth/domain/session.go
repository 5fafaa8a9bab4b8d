package domain

import "time"

// Session — один вход с конкретного устройства/браузера.
// "Текущей" считается сессия с самым свежим CreatedAt — это вычисляемое
// свойство на чтении, во избежание второго источника истины оно не хранится.
type Session struct {
	Token       string // непрозрачный токен устройства, НЕ bearer-токен
	DeviceModel string
	Browser     string
	OS          string
	IPAddress   string
	CreatedAt   time.Time
}
