// Copyright © 2019 One Concern

// Package storage defines the durable K/V surface the snapshot store spills
// to and exports into. Implementations are assumed to be fairly simple,
// file system-like backends.
package storage

import (
	"context"
	"io"
)

type errString string

func (e errString) Error() string { return string(e) }

const (
	// ErrNotFound indicates the key holds no object
	ErrNotFound errString = "not found"

	// ErrNotSupported indicates an operation the backend cannot perform
	ErrNotSupported errString = "not supported"
)

// Store implementations know how to persist spill records and export
// artifacts under string keys.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	Clear(context.Context) error
}

// PipeIO copies the reader to the writer
func PipeIO(writer io.Writer, reader io.Reader) (n int64, err error) {
	return io.Copy(writer, reader)
}
