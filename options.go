package skemagql

import "log/slog"

// DefaultDiscriminator is the field consulted to pick a union member at
// resolve time when Options.Discriminator is empty.
const DefaultDiscriminator = "type"

// Options controls translation behavior.
type Options struct {
	// Discriminator names the object field whose string literal (declared via
	// StringDescriptor.Literals) identifies a union member.
	Discriminator string
	// AllowNameConflicts disables shape checking between object descriptors
	// sharing a Meta.Name. The first resolved descriptor wins.
	AllowNameConflicts bool
	// Logger receives debug records about created types. Nil discards.
	Logger *slog.Logger
}

func (o Options) discriminator() string {
	if o.Discriminator == "" {
		return DefaultDiscriminator
	}
	return o.Discriminator
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
