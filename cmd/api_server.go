package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/seanjohnno/bitmapy/bmp"
	"github.com/seanjohnno/bitmapy/internal"
	"github.com/seanjohnno/bitmapy/internal/batch"
	"github.com/seanjohnno/bitmapy/internal/preview"
	"github.com/seanjohnno/bitmapy/models/bmpinfo"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(rootDir string, port int, debug bool) {

	internal.ShowVersion()
	internal.EnvironmentVars()

	if _, err := os.Stat(rootDir); err != nil {
		log.Fatalf("Error: cannot access root folder %s: %v", rootDir, err)
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	r.GET("/v1/bitmaps", listBitmaps(rootDir))
	r.GET("/v1/info/*path", bitmapInfo(rootDir))
	r.GET("/v1/preview/*path", bitmapPreview(rootDir))
	r.Static("/v1/raw", rootDir)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

// listBitmaps returns every .bmp under the root folder as root-relative
// slash paths.
func listBitmaps(rootDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		paths, err := batch.FindBitmaps(rootDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		bitmaps := make([]string, len(paths))
		for i, path := range paths {
			rel, err := filepath.Rel(rootDir, path)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			bitmaps[i] = filepath.ToSlash(rel)
		}
		c.JSON(http.StatusOK, gin.H{"bitmaps": bitmaps})
	}
}

func bitmapInfo(rootDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rel, b, ok := openRequested(c, rootDir)
		if !ok {
			return
		}
		report, err := bmpinfo.FromBitmap(filepath.ToSlash(rel), b)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func bitmapPreview(rootDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, b, ok := openRequested(c, rootDir)
		if !ok {
			return
		}
		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		if err := preview.PNG(c.Writer, b); err != nil {
			// Headers are gone already; log and let the client see a
			// truncated body.
			log.Printf("failed to render preview: %v", err)
		}
	}
}

// openRequested resolves the wildcard path parameter inside rootDir and
// opens the bitmap, writing the error response itself when it fails. The
// returned path is relative to the root.
func openRequested(c *gin.Context, rootDir string) (string, *bmp.Bitmap, bool) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	path, ok := resolveWithin(rootDir, rel)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path escapes root folder"})
		return "", nil, false
	}
	b, err := bmp.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such bitmap"})
		} else {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return "", nil, false
	}
	return rel, b, true
}

// resolveWithin joins rel onto rootDir, rejecting any path that resolves
// outside the root.
func resolveWithin(rootDir, rel string) (string, bool) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(filepath.Join(rootDir, rel))
	if err != nil {
		return "", false
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(os.PathSeparator)) {
		return "", false
	}
	return absPath, true
}
