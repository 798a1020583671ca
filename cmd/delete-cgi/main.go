// delete-cgi removes one uploaded artifact, named by its single argument.
// It only ever touches files under the configured upload root; identity
// records live elsewhere and are never deletable.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/webserv42/auth-system/internal/infrastructure/config"
	"github.com/webserv42/auth-system/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "delete-cgi: server misconfigured")
		return 1
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: delete-cgi <file>")
		return 1
	}

	target, err := resolve(cfg.Upload.Root, os.Args[1])
	if err != nil {
		log.Warn().Str("arg", os.Args[1]).Err(err).Msg("refused delete")
		fmt.Fprintf(os.Stderr, "delete-cgi: %v\n", err)
		return 1
	}

	if _, err := os.Stat(target); err != nil {
		log.Warn().Str("path", target).Msg("file does not exist")
		fmt.Fprintf(os.Stderr, "File does not exist: %s\n", target)
		return 1
	}

	if err := os.Remove(target); err != nil {
		log.Error().Str("path", target).Err(err).Msg("delete failed")
		fmt.Fprintf(os.Stderr, "File %s could not be deleted\n", target)
		return 1
	}

	log.Info().Str("path", target).Msg("file deleted")
	fmt.Fprintf(os.Stderr, "File deleted: %s\n", target)
	return 0
}

// resolve joins name onto the upload root and rejects any path that escapes
// it, including via "..".
func resolve(root, name string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, filepath.Base(name)))
	if !strings.HasPrefix(target, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes upload root: %s", name)
	}
	return target, nil
}
