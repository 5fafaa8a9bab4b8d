package device

import (
	"strings"

	"github.com/mileusna/useragent"
)

const (
	UnknownDevice  = "Unknown Device"
	UnknownBrowser = "Unknown Browser"
	UnknownOS      = "Unknown OS"
)

// Info — структурированный результат разбора User-Agent.
type Info struct {
	Model   string
	Browser string
	OS      string
}

// Classifier прячет разбор User-Agent за интерфейсом, чтобы в тестах подставлять заглушку.
type Classifier interface {
	Classify(userAgent string) Info
}

type uaClassifier struct{}

func NewClassifier() Classifier { return uaClassifier{} }

func (uaClassifier) Classify(raw string) Info {
	out := Info{Model: UnknownDevice, Browser: UnknownBrowser, OS: UnknownOS}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	ua := useragent.Parse(raw)
	if ua.Name != "" && !ua.Bot {
		out.Browser = ua.Name
	}
	if ua.OS != "" {
		out.OS = ua.OS
	}
	switch {
	case ua.Device != "":
		out.Model = ua.Device
	case ua.Mobile:
		out.Model = "Mobile"
	case ua.Tablet:
		out.Model = "Tablet"
	case ua.Desktop:
		out.Model = "Desktop"
	}
	return out
}
