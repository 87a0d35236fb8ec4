package main

import (
	"context"
	"fmt"

	md2apa "github.com/alnah/go-md2apa"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2apa.Input) (*md2apa.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2apa.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes an md2apa.ConverterPool as a Pool.
type poolAdapter struct {
	pool *md2apa.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when c did not come from Acquire; mixing converters
// between pools is a programming error.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*md2apa.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
