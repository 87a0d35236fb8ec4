package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2apa/internal/config"
	"github.com/alnah/go-md2apa/internal/fileutil"
	"github.com/alnah/go-md2apa/internal/yamlutil"
)

// defaultConfigFile is written by "config init" without a path.
const defaultConfigFile = "md2apa.yaml"

// ErrConfigExists is returned by "config init" when the target exists.
var ErrConfigExists = errors.New("config file already exists")

// runConfig prints the default configuration, or writes it to a file with
// "config init [path]". Existing files are never overwritten.
func runConfig(args []string, env *Environment) error {
	data, err := yamlutil.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	switch {
	case len(args) == 0:
		_, err = env.Stdout.Write(data)
		return err

	case args[0] == "init" && len(args) <= 2:
		path := defaultConfigFile
		if len(args) == 2 {
			path = args[1]
		}
		if fileutil.FileExists(path) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
		return nil

	default:
		printConfigUsage(env.Stderr)
		return fmt.Errorf("%w: config [init [path]]", errUsage)
	}
}
