package cmd

import (
	"github.com/seanjohnno/bitmapy/bmp"
	"github.com/seanjohnno/bitmapy/internal/pipeline"
)

// Transform runs the YAML-defined pipeline over one bitmap and saves the
// result. An empty outPath saves over the input; an empty pipeline makes
// that a byte-identical copy.
func Transform(inPath, pipelinePath, outPath string) error {
	stages, err := pipeline.Load(pipelinePath)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = inPath
	}
	return applyPipeline(inPath, outPath, stages)
}

// TransformDir runs the pipeline over every bitmap under dir, mirroring the
// directory structure into outDir, using poolSize workers. The stage list
// is built once; stages hold only their configuration, so workers can share
// it.
func TransformDir(dir, pipelinePath, outDir string, poolSize int) error {
	stages, err := pipeline.Load(pipelinePath)
	if err != nil {
		return err
	}
	return overDir(dir, outDir, poolSize, ".bmp", func(in, out string) error {
		return applyPipeline(in, out, stages)
	})
}

func applyPipeline(inPath, outPath string, stages []pipeline.Stage) error {
	b, err := bmp.Open(inPath)
	if err != nil {
		return err
	}
	if err := pipeline.Run(b, stages...); err != nil {
		return err
	}
	return b.SaveAs(outPath)
}
