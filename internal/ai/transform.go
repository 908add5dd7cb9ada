package ai

import (
	"context"
	"errors"
	"strings"
)

// Errors surfaced across the transform boundary.
var (
	ErrNoChange          = errors.New("no meaningful change suggested")
	ErrInsufficientQuota = errors.New("insufficient credits")
	ErrUnknownKind       = errors.New("unknown transform kind")
	ErrEmptyText         = errors.New("no text to transform")
)

// NoChangeSentinel is the distinguished response a model is instructed
// to return when the text needs no edits. Providers detect it and report
// ErrNoChange instead of a suggestion.
const NoChangeSentinel = "NO_CHANGES_NEEDED"

// Kind identifies one of the supported text transforms.
type Kind string

const (
	KindGrammar   Kind = "grammar"
	KindSpelling  Kind = "spelling"
	KindSummarize Kind = "summarize"
	KindRephrase  Kind = "rephrase"
	KindExpand    Kind = "expand"
	KindShrink    Kind = "shrink"
	KindRewriteAs Kind = "rewriteas"
	KindFactCheck Kind = "factcheck"
	// KindCustom runs a user-defined prompt loaded from the script layer.
	KindCustom Kind = "custom"
)

// Valid reports whether k is a recognized transform kind.
func (k Kind) Valid() bool {
	switch k {
	case KindGrammar, KindSpelling, KindSummarize, KindRephrase,
		KindExpand, KindShrink, KindRewriteAs, KindFactCheck, KindCustom:
		return true
	}
	return false
}

// Request is one transform invocation.
type Request struct {
	Kind Kind

	// Text is the content to transform: the captured selection if one
	// existed, otherwise the whole document's plain projection.
	Text string

	// Arg carries the free-form argument of kinds that take one, such
	// as the target voice for rewriteas.
	Arg string

	// Prompt overrides the built-in prompt for KindCustom.
	Prompt string
}

// Transformer is implemented by each model provider.
type Transformer interface {
	// Transform returns the rewritten text, ErrNoChange when the model
	// reports nothing to improve, or an error.
	Transform(ctx context.Context, req Request) (string, error)
}

// normalizeResponse trims a raw model response and maps the no-change
// sentinel to ErrNoChange. Shared by every provider.
func normalizeResponse(raw string) (string, error) {
	out := strings.TrimSpace(raw)
	if out == "" || strings.EqualFold(out, NoChangeSentinel) {
		return "", ErrNoChange
	}
	return out, nil
}
