package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nullrefgames/wgslhost/engine/assets"
	"github.com/nullrefgames/wgslhost/engine/renderer"
	"github.com/nullrefgames/wgslhost/engine/resolver"
	"github.com/nullrefgames/wgslhost/engine/scheduler"
	"github.com/nullrefgames/wgslhost/engine/window"
	"github.com/nullrefgames/wgslhost/engine/wgsl"
)

func newRunCmd() *cobra.Command {
	var (
		widthOverride  int
		heightOverride int
		oscAddr        string
		debugShader    bool
		uncapped       bool
	)

	cmd := &cobra.Command{
		Use:   "run <path-to-shader.wgsl|.zip>",
		Short: "Run a single-file WGSL game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(args[0], runOptions{
				widthOverride:  widthOverride,
				heightOverride: heightOverride,
				oscAddr:        oscAddr,
				debugShader:    debugShader,
				uncapped:       uncapped,
			})
		},
	}

	cmd.Flags().IntVar(&widthOverride, "width", 0, "override the shader's declared window width")
	cmd.Flags().IntVar(&heightOverride, "height", 0, "override the shader's declared window height")
	cmd.Flags().StringVar(&oscAddr, "osc-addr", ":9000", "UDP address to listen for OSC messages on (empty disables OSC)")
	cmd.Flags().BoolVar(&debugShader, "debug-shader", false, "write the fully preprocessed WGSL source to a sibling .generated.wgsl file before running")
	cmd.Flags().BoolVar(&uncapped, "uncapped", false, "disable vsync and present frames as fast as possible")

	return cmd
}

type runOptions struct {
	widthOverride, heightOverride int
	oscAddr                       string
	debugShader                   bool
	uncapped                      bool
}

// openResolver builds a Resolver rooted at entryPath's containing directory
// (or, if entryPath is a .zip archive, at the archive's own root), and
// returns the entry path to preprocess relative to that root.
func openResolver(entryPath string) (resolver.Resolver, string, error) {
	if strings.EqualFold(filepath.Ext(entryPath), ".zip") {
		data, err := os.ReadFile(entryPath)
		if err != nil {
			return nil, "", err
		}
		r, err := resolver.NewArchiveResolver(data)
		if err != nil {
			return nil, "", err
		}
		return r, findEntry(r), nil
	}

	root := filepath.Dir(entryPath)
	return resolver.NewDirectoryResolver(root), filepath.Base(entryPath), nil
}

// findEntry picks the first .wgsl file in an archive as its entry point,
// since a packaged single-file game has exactly one.
func findEntry(r resolver.Resolver) string {
	for _, p := range r.List() {
		if strings.EqualFold(filepath.Ext(p), ".wgsl") {
			return p
		}
	}
	return ""
}

func runGame(path string, opts runOptions) error {
	res, entry, err := openResolver(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if entry == "" {
		return fmt.Errorf("%s: no .wgsl entry point found", path)
	}

	// Preprocess once up front purely to size the window before the
	// scheduler re-preprocesses internally as part of LoadShader.
	manifest, err := wgsl.Preprocess(res, entry)
	if err != nil {
		return err
	}

	if opts.debugShader {
		dumpPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".generated.wgsl"
		if err := os.WriteFile(dumpPath, []byte(manifest.GeneratedWGSL), 0o644); err != nil {
			return fmt.Errorf("writing debug shader dump: %w", err)
		}
		fmt.Fprintln(os.Stderr, "wrote generated WGSL to", dumpPath)
	}

	width, height := int(manifest.Width), int(manifest.Height)
	if opts.widthOverride > 0 {
		width = opts.widthOverride
	}
	if opts.heightOverride > 0 {
		height = opts.heightOverride
	}

	win := window.NewWindow(
		window.WithTitle(manifest.Title),
		window.WithWidth(width),
		window.WithHeight(height),
	)

	presentMode := renderer.PresentModeVSync
	if opts.uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win, renderer.WithPresentMode(presentMode))

	noVideo := func(path string) (assets.VideoSource, error) {
		return nil, fmt.Errorf("video playback is not available in this build")
	}
	noCamera := func(device int) (assets.CameraSource, error) {
		return nil, fmt.Errorf("camera capture is not available in this build")
	}

	sched, err := scheduler.New(scheduler.Options{
		Resolver:   res,
		Window:     win,
		Renderer:   r,
		OSCAddr:    opts.oscAddr,
		VideoOpen:  noVideo,
		CameraOpen: noCamera,
	}, entry)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	defer sched.Close()
	defer win.Close()

	// NewWindow already wires the default key/mouse callbacks into
	// win.Input(); the scheduler reads that same InputState each frame.
	input := win.Input()
	lastFrame := time.Now()
	var totalSeconds float32

	win.SetUpdateCallback(func() {
		now := time.Now()
		delta := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now
		totalSeconds += delta

		if err := sched.Frame(input, delta, totalSeconds); err != nil {
			fmt.Fprintln(os.Stderr, "frame error:", err)
		}
	})

	win.ProcessMessages()
	return nil
}
