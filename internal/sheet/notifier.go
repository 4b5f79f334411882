package sheet

//go:generate mockgen -destination=mock/mock_notifier.go -package=mocksheet -source=notifier.go

import "go.uber.org/zap"

// Notifier shows short, dismissible messages to the user.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// LogNotifier reports notifications through a logger: successes at info, errors at warn.
type LogNotifier struct {
	Logger *zap.Logger
}

// Success implements Notifier.
func (n LogNotifier) Success(title, detail string) {
	n.Logger.Info(title, zap.String("detail", detail))
}

// Error implements Notifier.
func (n LogNotifier) Error(title, detail string) {
	n.Logger.Warn(title, zap.String("detail", detail))
}
