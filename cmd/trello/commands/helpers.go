package commands

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/kanban-io/trello-client/pkg/trelloclient"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	Yes = "yes"
	No  = "no"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn       = errors.New("not logged in, use 'trello login' first")
	ErrBoardIDRequired   = errors.New("board ID is required")
	ErrListIDRequired    = errors.New("list ID is required")
	ErrCallbackRequired  = errors.New("callback URL is required (--callback)")
	ErrModelIDRequired   = errors.New("model ID is required (--model)")
	ErrNatsURLRequired   = errors.New("NATS URL is required (--nats)")
	ErrRelayBindRequired = errors.New("listen address is required (--listen)")
)

// createClient builds a trello.Client from the resolved configuration.
// Credentials come from flags, TRELLO_* environment variables, or the config
// file written by 'trello login'.
func createClient() (trello.Client, error) {
	apiKey := viper.GetString("api_key")
	token := viper.GetString("token")

	if apiKey == "" || token == "" {
		return nil, ErrNotLoggedIn
	}

	config := &trello.Config{
		APIKey:  apiKey,
		Token:   token,
		BaseURL: viper.GetString("base_url"),
		Debug:   viper.GetBool("verbose"),
		Logger:  newLogger(viper.GetBool("verbose")),
	}

	return trelloclient.New(config)
}

// slogAdapter bridges a slog.Logger to the trello.Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a *slogAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, attrs(fields)...)
}

func (a *slogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, attrs(fields)...)
}

func (a *slogAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, attrs(fields)...)
}

func attrs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}

	return args
}

func newLogger(verbose bool) trello.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})

	return &slogAdapter{logger: slog.New(handler)}
}

// jsonEncoder returns an indenting encoder for w.
func jsonEncoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v any) error {
	encoder := yaml.NewEncoder(os.Stdout)

	return encoder.Encode(v)
}

// structuredOutput renders v for the json and yaml formats. It returns false
// when the table format is selected and the caller should render a table.
func structuredOutput(v any) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return true, renderJSON(v)
	case OutputFormatYAML:
		return true, renderYAML(v)
	default:
		return false, nil
	}
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}
