package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/boyter/gocodewalker"
	"github.com/erdkit/erdkit"
)

// collectSchemaFiles expands files and directories into the list of schema
// files to convert. Directories are walked gitignore-aware; the allow list is
// the supported extensions plus any extension named by a config file pattern.
func collectSchemaFiles(args []string, cfg *erdkit.Config) ([]string, error) {
	extensions := allowedExtensions(cfg)

	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		walked, err := walkDir(arg, extensions)
		if err != nil {
			return nil, err
		}

		files = append(files, walked...)
	}

	return files, nil
}

func allowedExtensions(cfg *erdkit.Config) []string {
	extensions := erdkit.SupportedExtensions()

	for pattern := range cfg.Files {
		ext := strings.TrimPrefix(filepath.Ext(pattern), ".")
		if ext != "" && !strings.ContainsAny(ext, "*?[") {
			extensions = append(extensions, ext)
		}
	}

	return extensions
}

func walkDir(root string, extensions []string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = extensions

	var walkErr error
	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true
	})

	var (
		files []string
		wg    sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for f := range fileListQueue {
			files = append(files, f.Location)
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return nil, err
	}

	wg.Wait()

	return files, walkErr
}
