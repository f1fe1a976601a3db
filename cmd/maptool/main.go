// maptool inspects Tiled maps without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/texture"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/engine/tilemap"
	"github.com/Faultbox/beyond-sight/internal/logger"
	"github.com/Faultbox/beyond-sight/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "bake":
		cmdBake(args)
	case "solids":
		cmdSolids(args)
	case "chunks":
		cmdChunks(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`maptool - Tiled map inspector

Usage:
  maptool <command> [options]

Commands:
  info <map.tmj>                       Show map header, tilesets and layers
  bake [-v] <map.tmj>                  Bake the map and report chunks and batches
  solids <map.tmj>                     List baked collision rectangles
  chunks [-margin N] <map.tmj> <x> <y> Show chunks streamed around a world point

Examples:
  maptool info assets/maps/ground.tmj
  maptool bake -v assets/maps/ground.tmj
  maptool chunks -margin 400 assets/maps/ground.tmj 512 512`)
}

// headlessLoader reads only image headers and hands out sequential IDs.
type headlessLoader struct {
	next  uint32
	cache map[string]tileatlas.Texture
}

func newHeadlessLoader() *headlessLoader {
	return &headlessLoader{cache: make(map[string]tileatlas.Texture)}
}

func (l *headlessLoader) LoadTexture(path string) (tileatlas.Texture, error) {
	if tex, ok := l.cache[path]; ok {
		return tex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tileatlas.Texture{}, err
	}
	w, h, err := texture.DecodeSize(data)
	if err != nil {
		return tileatlas.Texture{}, err
	}
	l.next++
	tex := tileatlas.Texture{ID: l.next, Width: w, Height: h}
	l.cache[path] = tex
	return tex, nil
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptool info <map.tmj>")
		os.Exit(1)
	}

	doc := mustParse(args[0])

	fmt.Printf("Map: %s\n", args[0])
	fmt.Printf("Size: %dx%d tiles (%dx%d px)\n", doc.Width, doc.Height, doc.PixelWidth(), doc.PixelHeight())
	fmt.Printf("Tile: %dx%d px\n", doc.TileWidth, doc.TileHeight)

	fmt.Printf("\nTilesets (%d):\n", len(doc.Tilesets))
	for _, ts := range doc.Tilesets {
		fmt.Printf("  %6d  %s\n", ts.FirstGID, ts.Source)
	}

	fmt.Printf("\nLayers (%d):\n", len(doc.Layers))
	for i := range doc.Layers {
		layer := &doc.Layers[i]
		vis := "visible"
		if !layer.IsVisible() {
			vis = "hidden"
		}
		switch layer.Type {
		case formats.LayerTypeTile:
			w, h := doc.LayerSize(layer)
			fmt.Printf("  %-12s %-24s %-8s alpha=%.2f %dx%d\n", layer.Type, layer.Name, vis, layer.Alpha(), w, h)
		case formats.LayerTypeObject:
			fmt.Printf("  %-12s %-24s %-8s alpha=%.2f objects=%d\n", layer.Type, layer.Name, vis, layer.Alpha(), len(layer.Objects))
		default:
			fmt.Printf("  %-12s %-24s (ignored)\n", layer.Type, layer.Name)
		}
	}
}

func cmdBake(args []string) {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Log tileset and layer details")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptool bake [-v] <map.tmj>")
		os.Exit(1)
	}
	initLogger(*verbose)

	path := fs.Arg(0)
	doc := mustParse(path)
	opts := bakeOptions()
	reg := tileatlas.Load(doc, filepath.Dir(path), newHeadlessLoader(), opts.UVPadding)
	baked := tilemap.Build(doc, reg, opts)

	fmt.Printf("Map: %s\n", path)
	fmt.Printf("World: %.0fx%.0f units, chunk %.0f\n", baked.Width, baked.Height, baked.ChunkSize)
	fmt.Printf("Tilesets: %d resolved of %d, %d tiles\n", len(reg.Tilesets()), len(doc.Tilesets), reg.Len())
	for _, name := range reg.Tilesets() {
		fmt.Printf("  %s\n", name)
	}

	s := baked.Stats
	fmt.Printf("\nLayers: %d baked, %d skipped\n", s.Layers, s.SkippedLayers)
	fmt.Printf("Quads: %d\n", s.Quads)
	fmt.Printf("Unresolved GIDs: %d\n", s.Unresolved)
	fmt.Printf("Solids: %d\n", baked.Solids.Len())

	fmt.Println()
	printPass(tilemap.Background, baked.Background)
	printPass(tilemap.Foreground, baked.Foreground)
}

func printPass(p tilemap.Pass, groups map[tilemap.ChunkKey]*tilemap.ChunkGroup) {
	batches, quads := 0, 0
	for _, g := range groups {
		batches += len(g.Batches)
		for _, b := range g.Batches {
			quads += b.Quads()
		}
	}
	fmt.Printf("%-10s chunks=%-5d batches=%-6d quads=%d\n", p, len(groups), batches, quads)
}

func cmdSolids(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptool solids <map.tmj>")
		os.Exit(1)
	}
	initLogger(false)

	baked := mustBake(args[0])
	rects := baked.Solids.Rects()
	for _, r := range rects {
		fmt.Printf("%8.1f %8.1f %6.1f %6.1f\n", r.X, r.Y, r.W, r.H)
	}
	fmt.Printf("\nTotal: %d solids\n", len(rects))
}

func cmdChunks(args []string) {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	margin := fs.Float64("margin", tilemap.DefaultViewMargin, "Streaming half-extent in world units")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: maptool chunks [-margin N] <map.tmj> <x> <y>")
		os.Exit(1)
	}
	initLogger(false)

	x, errX := strconv.ParseFloat(fs.Arg(1), 64)
	y, errY := strconv.ParseFloat(fs.Arg(2), 64)
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "Error: x and y must be numbers")
		os.Exit(1)
	}

	baked := mustBake(fs.Arg(0))
	streamer := tilemap.NewStreamer(baked, *margin, nil)
	attached, _ := streamer.UpdateVisible(x, y)

	lo, hi := tilemap.VisibleRange(x, y, *margin, baked.ChunkSize)
	fmt.Printf("Focus: (%.1f, %.1f) margin %.0f\n", x, y, *margin)
	fmt.Printf("Range: (%d,%d) .. (%d,%d)\n", lo.X, lo.Y, hi.X, hi.Y)

	loaded := 0
	for _, k := range attached {
		bg := baked.Group(tilemap.Background, k)
		fg := baked.Group(tilemap.Foreground, k)
		if bg == nil && fg == nil {
			continue
		}
		loaded++
		fmt.Printf("  (%d,%d) bg=%d fg=%d\n", k.X, k.Y, batchCount(bg), batchCount(fg))
	}
	fmt.Printf("\nVisible: %d chunks, %d with geometry\n", streamer.VisibleCount(), loaded)
}

func batchCount(g *tilemap.ChunkGroup) int {
	if g == nil {
		return 0
	}
	return len(g.Batches)
}

func bakeOptions() tilemap.Options {
	return tilemap.OptionsFromConfig(config.Default().World)
}

func mustParse(path string) *formats.TMJ {
	doc, err := formats.ParseTMJFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return doc
}

func mustBake(path string) *tilemap.Baked {
	baked, err := tilemap.LoadFile(path, newHeadlessLoader(), bakeOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return baked
}

func initLogger(verbose bool) {
	lvl := "warn"
	if verbose {
		lvl = "debug"
	}
	if err := logger.Init(lvl, ""); err != nil {
		logger.InitNop()
	}
}
