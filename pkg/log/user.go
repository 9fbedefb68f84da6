package log

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints user-facing notices with pterm and mirrors them to
// zerolog for debugging
type UserLogger struct {
	log zerolog.Logger
	out io.Writer
}

// 🎯 NewUserLogger creates a user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 📦 LogNotice logs a neutral notice
func (u *UserLogger) LogNotice(description string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(u.out).Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs a pass, a warning (invalid, no error) or a failure
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(u.out).Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(u.out).Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
	default:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(u.out).Println(description)
		u.log.Warn().Msg(description)
	}
}
