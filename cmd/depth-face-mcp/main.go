package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
	"github.com/ironsheep/depth-face-mcp/internal/imaging"
	"github.com/ironsheep/depth-face-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("depth-face-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "extract":
			if err := runExtract(os.Args[2:]); err != nil {
				if !errors.Is(err, flag.ErrHelp) {
					log.Printf("Extraction failed: %v", err)
				}
				os.Exit(1)
			}
			return
		}
	}

	if os.Getenv(server.LogLevelEnv) == "debug" {
		log.Printf("Depth Face MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "depth-face-mcp - face region extraction from depth images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  depth-face-mcp                 Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  depth-face-mcp extract [flags] Extract the face from one depth image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", server.LogLevelEnv)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'depth-face-mcp extract -h' for extraction flags.")
}

// runExtract implements the extract subcommand.
func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	in := fs.String("in", "", "input depth image (required)")
	out := fs.String("out", "", "output raster for the refined face, .png or .jpg (required)")
	panels := fs.String("panels", "", "optional .png path for the six-panel diagnostic view")
	panelSize := fs.Int("panel-size", imaging.DefaultPanelSize, "edge length in pixels of each diagnostic panel")
	radius := fs.Int("radius", depth.DefaultCropRadius, "crop radius around the nose tip")
	sigma := fs.Float64("sigma", depth.DefaultSmoothingSigma, "Gaussian sigma of the roughness map")
	trim := fs.Float64("trim", depth.DefaultTrimPercent, "fraction trimmed from each edge, below 0.5")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("both -in and -out are required")
	}

	cfg := depth.Config{CropRadius: *radius, SmoothingSigma: *sigma, TrimPercent: *trim}

	src, err := imaging.LoadDepth(*in)
	if err != nil {
		return err
	}
	result, res, err := imaging.ExtractFace(src, cfg, *out)
	if err != nil {
		return err
	}
	log.Printf("Nose tip (%d,%d) depth %v; window %dx%d; face region %d px; wrote %dx%d to %s",
		result.NoseTip.Row, result.NoseTip.Col, result.NoseTip.Depth,
		result.CropWidth, result.CropHeight, result.Face.Area,
		result.Refined.Width, result.Refined.Height, *out)

	if *panels != "" {
		view, err := imaging.RenderPanels(src.Depth, res, *panelSize)
		if err != nil {
			return err
		}
		if err := imaging.SavePanels(*panels, view); err != nil {
			return err
		}
		log.Printf("Wrote diagnostic panels to %s", *panels)
	}
	return nil
}
