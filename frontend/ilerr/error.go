package ilerr

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Errors accumulates the errors found while checking IR. A nil *Errors is
// empty and ready to use.
type Errors struct {
	errs []IrError
}

func (r *Errors) With(errs ...IrError) *Errors {
	if r == nil {
		r = &Errors{}
	}
	r.errs = append(r.errs, errs...)
	return r
}

func (r *Errors) Merge(other *Errors) *Errors {
	if other == nil {
		return r
	}
	return r.With(other.errs...)
}

func (r *Errors) Errors() []IrError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	return len(r.Errors()) > 0
}

// Err returns nil if r is empty, and otherwise an error listing every error
// of r with its code, one per line
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	lines := make([]string, len(r.errs))
	for i, err := range r.errs {
		lines[i] = FormatWithCode(err)
	}
	return errors.New(strings.Join(lines, "\n"))
}

func (r *Errors) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(r.Errors()))
	for i, err := range r.Errors() {
		attrs = append(attrs, slog.Group(
			"e"+strconv.Itoa(i),
			slog.Int("code", int(err.Code())),
			slog.String("msg", err.Error()),
		))
	}
	return slog.GroupValue(attrs...)
}
