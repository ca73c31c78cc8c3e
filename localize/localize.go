// Package localize fills missing Arabic counterparts of English content
// fields, such as a record's name, role and biography.
package localize

import (
	"context"
	"strings"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/rs/zerolog"
)

// Resolver translates English text to Arabic. *tarjama.Translator satisfies it.
type Resolver interface {
	ToArabic(ctx context.Context, text string) (string, error)
}

// Field is one bilingual content field.
type Field struct {
	Name    string `json:"name"`
	English string `json:"en"`
	Arabic  string `json:"ar"`
}

// Report lists field names by outcome.
type Report struct {
	Filled         []string `json:"filled"`
	Transliterated []string `json:"transliterated"`
	Kept           []string `json:"kept"`
	Skipped        []string `json:"skipped"`
	Failed         []string `json:"failed"`
}

// Filler fills blank Arabic fields. Failures never abort the caller: a field
// that cannot be resolved is left blank, or transliterated when enabled.
type Filler struct {
	resolver      Resolver
	transliterate bool
	logger        zerolog.Logger
}

// Option configures a Filler.
type Option func(*Filler)

// WithTransliterateOnFailure writes a transliteration when the resolver fails.
func WithTransliterateOnFailure(enabled bool) Option {
	return func(f *Filler) {
		f.transliterate = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Filler) {
		f.logger = logger
	}
}

// NewFiller creates a Filler backed by resolver.
func NewFiller(resolver Resolver, opts ...Option) *Filler {
	f := &Filler{
		resolver: resolver,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill returns a copy of fields with every blank Arabic value resolved from
// its English counterpart. Fields that already carry Arabic text are kept
// as given. Fields are resolved one at a time, in order.
func (f *Filler) Fill(ctx context.Context, fields ...Field) ([]Field, Report) {
	out := make([]Field, len(fields))
	copy(out, fields)

	var report Report
	for i := range out {
		field := &out[i]

		switch {
		case strings.TrimSpace(field.Arabic) != "":
			report.Kept = append(report.Kept, field.Name)
			continue
		case strings.TrimSpace(field.English) == "":
			field.Arabic = ""
			report.Skipped = append(report.Skipped, field.Name)
			continue
		}

		if ctx.Err() != nil {
			field.Arabic = ""
			report.Failed = append(report.Failed, field.Name)
			continue
		}

		ar, err := f.resolver.ToArabic(ctx, field.English)
		if err == nil && strings.TrimSpace(ar) != "" {
			field.Arabic = ar
			report.Filled = append(report.Filled, field.Name)
			continue
		}

		f.logger.Warn().Err(err).Str("field", field.Name).Msg("could not resolve Arabic value")

		if f.transliterate && ctx.Err() == nil {
			if tr := tarjama.Transliterate(strings.TrimSpace(field.English)); tarjama.HasArabic(tr) {
				field.Arabic = tr
				report.Transliterated = append(report.Transliterated, field.Name)
				continue
			}
		}

		field.Arabic = ""
		report.Failed = append(report.Failed, field.Name)
	}

	return out, report
}
