package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	CategoryField = "category"
)

const (
	CategoryQuote   = "quote"
	CategoryToken   = "token"
	CategoryEncode  = "encode"
	CategoryNetwork = "network"
)

func WithCategory(category string) func(e *zerolog.Event) {
	return func(e *zerolog.Event) {
		e.Str(CategoryField, category)
	}
}

func WithQuoteCategory(e *zerolog.Event) *zerolog.Event {
	return e.Str(CategoryField, CategoryQuote)
}

func WithTokenCategory(e *zerolog.Event) *zerolog.Event {
	return e.Str(CategoryField, CategoryToken)
}

func StdLogger() *zerolog.Logger {
	outPut := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    false,
		TimeFormat: time.DateTime,
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s: ", i)
		},
		FieldsOrder: []string{"endpoint", "params", "result"},
	}
	log := zerolog.New(outPut).With().Timestamp().Logger()

	return &log
}

// NewStdLog prints a one-line access log for an upstream call.
func NewStdLog(endpoint string, params string, result []byte) {
	log := StdLogger()
	log.Info().Str("endpoint", endpoint).Str("params", params).RawJSON("result", result).Send()
}
