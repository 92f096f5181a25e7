package main

import (
	"fmt"
	"log"
	"os"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/joho/godotenv"
	"github.com/seanjohnno/bitmapy/cmd"
	"github.com/spf13/cobra"
)

func main() {
	var asJSON bool
	var showFields bool
	var outPath string
	var dirPath string
	var outDir string
	var poolSize int
	var pipelinePath string
	var whereExpr string
	var frameDelay float64
	var rootPath string
	var port int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	defaultRoot := os.Getenv("BITMAPY_DATA_DIR")
	if defaultRoot == "" {
		defaultRoot = "./data"
	}

	rootCmd := &cobra.Command{
		Use:  "bitmapy",
		Long: `BMP inspection and pixel-level editing toolkit`,
	}

	infoCmd := &cobra.Command{
		Use:   "info <file> [--json] [--fields]",
		Short: "Show bitmap header information",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Info(args[0], asJSON, showFields)
		},
	}
	infoCmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full report as JSON")
	infoCmd.Flags().BoolVar(&showFields, "fields", false, "Dump every DIB header field")

	convertCmd := &cobra.Command{
		Use:   "convert [<file>] [-o <out.png>] [--dir <path> --out-dir <path> --pool <n>]",
		Short: "Convert bitmaps to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if dirPath != "" {
				return cmd.ConvertDir(dirPath, outDir, poolSize)
			}
			if len(args) != 1 {
				return fmt.Errorf("either a file argument or --dir is required")
			}
			return cmd.Convert(args[0], outPath)
		},
	}
	convertCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (defaults to input with .png extension)")
	convertCmd.Flags().StringVar(&dirPath, "dir", "", "Convert every bitmap under this folder")
	convertCmd.Flags().StringVar(&outDir, "out-dir", "./out", "Output folder for --dir mode")
	convertCmd.Flags().IntVar(&poolSize, "pool", 4, "Worker pool size for --dir mode")

	transformCmd := &cobra.Command{
		Use:   "transform [<file>] -p <pipeline.yaml> [-o <out.bmp>] [--dir <path> --out-dir <path> --pool <n>]",
		Short: "Run a processing pipeline over bitmaps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if dirPath != "" {
				return cmd.TransformDir(dirPath, pipelinePath, outDir, poolSize)
			}
			if len(args) != 1 {
				return fmt.Errorf("either a file argument or --dir is required")
			}
			return cmd.Transform(args[0], pipelinePath, outPath)
		},
	}
	transformCmd.Flags().StringVarP(&pipelinePath, "pipeline", "p", "", "Pipeline definition YAML file")
	transformCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (defaults to overwriting the input)")
	transformCmd.Flags().StringVar(&dirPath, "dir", "", "Transform every bitmap under this folder")
	transformCmd.Flags().StringVar(&outDir, "out-dir", "./out", "Output folder for --dir mode")
	transformCmd.Flags().IntVar(&poolSize, "pool", 4, "Worker pool size for --dir mode")
	_ = transformCmd.MarkFlagRequired("pipeline")

	statsCmd := &cobra.Command{
		Use:   "stats <file> [--where <expr>]",
		Short: "Show per-channel pixel statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Stats(args[0], whereExpr)
		},
	}
	statsCmd.Flags().StringVar(&whereExpr, "where", "", "Only count pixels matching this expression, e.g. 'r > 200 && y < 10'")

	animateCmd := &cobra.Command{
		Use:   "animate <dir> [-o <out.png>] [--delay <secs>]",
		Short: "Build an animated PNG from a folder of bitmaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Animate(args[0], outPath, frameDelay)
		},
	}
	animateCmd.Flags().StringVarP(&outPath, "output", "o", "animation.png", "Output file")
	animateCmd.Flags().Float64Var(&frameDelay, "delay", 1.0, "Seconds per frame")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--root <path>] [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(rootPath, port, debug)
		},
	}
	apiServerCmd.Flags().StringVar(&rootPath, "root", defaultRoot, "Path to root folder")
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versioninfo.Short())
		},
	}

	rootCmd.AddCommand(infoCmd, convertCmd, transformCmd, statsCmd, animateCmd, apiServerCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
