package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/seanjohnno/bitmapy/bmp"
	"github.com/seanjohnno/bitmapy/internal/batch"
	"github.com/seanjohnno/bitmapy/internal/preview"
)

// Convert renders one bitmap as a PNG. An empty outPath derives the output
// name from the input by swapping the extension.
func Convert(inPath, outPath string) error {
	if outPath == "" {
		outPath = replaceExt(inPath, ".png")
	}

	b, err := bmp.Open(inPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := preview.PNG(f, b); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// ConvertDir converts every bitmap under dir, mirroring the directory
// structure into outDir, using poolSize workers.
func ConvertDir(dir, outDir string, poolSize int) error {
	return overDir(dir, outDir, poolSize, ".png", Convert)
}

// overDir fans convert-style single-file operations out over a directory
// tree, mirroring relative paths into outDir with the given extension.
func overDir(dir, outDir string, poolSize int, outExt string, run func(in, out string) error) error {
	paths, err := batch.FindBitmaps(dir)
	if err != nil {
		return err
	}

	processor, err := batch.NewProcessor(paths, poolSize, func(path string) error {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, replaceExt(rel, outExt))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return run(path, outPath)
	})
	if err != nil {
		return err
	}

	processor.StartWorkers()
	processor.DispatchJobs()
	errs := processor.Wait()
	if len(errs) > 0 {
		for _, err := range errs {
			log.Printf("Error: %v", err)
		}
		return fmt.Errorf("%d of %d files failed", len(errs), len(paths))
	}
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
