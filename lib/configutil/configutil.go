package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// Merge unmarshals every json5 document in order onto `base`, later
// documents override fields set by earlier ones. Empty documents are skipped.
func Merge[T any](base T, documents ...[]byte) (T, error) {
	out := base
	for _, doc := range documents {
		if len(doc) == 0 {
			continue
		}
		var override T
		err := json5.Unmarshal(doc, &override)
		if err != nil {
			return out, err
		}
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// reads a configuration file, `name` should come with a file extension,
// it will automatically be lopped off to produce the other extensions.
// this function will merge the following files onto `base`, where higher number is more prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
func ReadConfig[T any](name string, base T) (T, error) {
	dirname := filepath.Dir(name)
	basename := filepath.Base(name)
	prefixname, ext := splitExt(basename)

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return base, err
	}

	localFilepath := filepath.Join(
		dirname,
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
	localFile, err := os.ReadFile(localFilepath)
	if err != nil && !os.IsNotExist(err) {
		return base, err
	}

	if len(defaultFile) == 0 && len(localFile) == 0 {
		return base, os.ErrNotExist
	}
	if len(localFile) > 0 {
		slog.Info("merging config with local overrides", "local", localFilepath)
	}

	return Merge(base, defaultFile, localFile)
}

// ReadConfig but it recursively goes up the filesystem until the root
// to find a configuration file matching the name.
func ReadRecursively[T any](name string, base T) (T, error) {
	root, err := filepath.Abs("/")
	if err != nil {
		return base, err
	}
	current, err := os.Getwd()
	if err != nil {
		return base, err
	}

	for {
		config, err := ReadConfig(filepath.Join(current, name), base)
		if os.IsNotExist(err) {
			if current == root {
				break
			}
			current = filepath.Dir(current)
			continue
		}
		if err != nil {
			return base, err
		}
		return config, nil
	}

	return base, os.ErrNotExist
}
