package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"text/tabwriter"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpures/asset"
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/gpures/codec"
	"github.com/gogpu/gpures/render"
)

func runBackends(_ context.Context, _ *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return printBackends(os.Stdout)
}

func printBackends(w io.Writer) error {
	def, err := backend.Default()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tAPI\tPRIORITY\tCOMPILED\tDEFAULT")
	for _, d := range backend.Declared() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%v\n", d.Name, d.API, d.Priority, d.Enabled, d == def)
	}
	return tw.Flush()
}

func runTypes(_ context.Context, _ *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return printTypes(os.Stdout)
}

func printTypes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tASSET\tDATA\tASSET TAG\tDATA TAG")
	for _, b := range asset.Bindings() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.Name, b.Asset, b.Data, b.ID, b.DataID)
	}
	return tw.Flush()
}

func runInspect(_ context.Context, _ *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	var errs []error
	for _, path := range args {
		src, err := asset.ReadSource(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		data, _, err := asset.Decode(src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Printf("%s: %s\n", path, describe(data))
	}
	return errors.Join(errs...)
}

// describe summarizes a decoded descriptor on one line.
func describe(data any) string {
	switch d := data.(type) {
	case *render.MeshData:
		s := fmt.Sprintf("mesh %q: %d stream(s), %d vertices, %s", d.Label, len(d.Vertices), d.VertexCount(), d.Topology)
		if d.Indexed() {
			s += fmt.Sprintf(", %d %s indices", d.IndexCount(), d.Indices.Format)
		}
		return s + fmt.Sprintf(", %d bytes", d.Size())
	case *render.TextureData:
		return fmt.Sprintf("texture %q: %dx%dx%d %s %s, %d mip level(s), %d bytes", d.Label,
			d.Size.Width, d.Size.Height, d.Size.DepthOrArrayLayers, d.Dimension, d.Format, d.MipLevels, len(d.Data))
	}
	return fmt.Sprintf("%T", data)
}

func runConvert(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	to := fs.String("to", "", "output format (binary, yaml, toml, image); default from OUT's extension")
	maxSide := fs.Int("max", 0, "downscale RGBA8 textures so neither side exceeds N pixels")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}
	in, out := fs.Arg(0), fs.Arg(1)

	f, err := outputFormat(*to, out, a.cfg.Format)
	if err != nil {
		return err
	}
	src, err := asset.ReadSource(in)
	if err != nil {
		return err
	}
	data, _, err := asset.Decode(src)
	if err != nil {
		return err
	}

	var raw []byte
	switch d := data.(type) {
	case *render.MeshData:
		raw, err = d.Encode(f)
	case *render.TextureData:
		if downscale(d, *maxSide) {
			a.log.Info("texture downscaled", "name", src.Name, "width", d.Size.Width, "height", d.Size.Height)
		}
		raw, err = d.Encode(f)
	default:
		return fmt.Errorf("convert: %s has no encoder", describe(data))
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	a.log.Info("converted", "from", in, "to", out, "format", f.String(), "bytes", len(raw))
	return nil
}

// outputFormat picks the -to flag, then the output extension, then the
// configured default.
func outputFormat(flagValue, path, fallback string) (codec.Format, error) {
	if flagValue != "" {
		return codec.ParseFormat(flagValue)
	}
	if f, err := codec.FormatFromPath(path); err == nil {
		return f, nil
	}
	return codec.ParseFormat(fallback)
}

// downscale shrinks an uncompressed 2D RGBA8 texture in place so that
// neither side exceeds maxSide. It reports whether the texture changed.
func downscale(t *render.TextureData, maxSide int) bool {
	if maxSide <= 0 || t.Dimension != gputypes.TextureDimension2D || t.Size.DepthOrArrayLayers != 1 {
		return false
	}
	switch t.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
	default:
		return false
	}
	w, h := int(t.Size.Width), int(t.Size.Height)
	nw, nh := builder.FitWithin(w, h, maxSide)
	if nw == w && nh == h {
		return false
	}
	img := &image.NRGBA{Pix: t.Data, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	scaled := builder.FromImageScaled(img, nw, nh)
	scaled.Label = t.Label
	scaled.Format = t.Format
	scaled.Sampler = t.Sampler
	t.TextureBuilder = scaled
	return true
}

func runLoad(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	name := fs.String("backend", a.cfg.Backend, "backend to open (default: highest-priority compiled backend)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	dir := a.cfg.AssetsDir
	switch fs.NArg() {
	case 0:
	case 1:
		dir = fs.Arg(0)
	default:
		return errUsage
	}

	sess, err := openSession(*name)
	if err != nil {
		return err
	}
	defer sess.Close()
	a.log.Info("device ready", "backend", sess.Backend().Name, "adapter", sess.AdapterName())

	srcs, err := asset.ReadDir(dir)
	if err != nil {
		return err
	}
	loader := asset.NewLoader(asset.WithWorkers(a.cfg.Workers))
	sess.RegisterProcessors(loader)

	var meshSrcs, texSrcs []asset.Source
	for _, s := range srcs {
		switch s.Kind {
		case codec.KindMesh.String():
			meshSrcs = append(meshSrcs, s)
		case codec.KindTexture.String():
			texSrcs = append(texSrcs, s)
		}
	}

	meshes := asset.NewStorage[render.Mesh]()
	textures := asset.NewStorage[render.Texture]()
	defer func() {
		meshes.Range(func(_ asset.Handle[render.Mesh], m render.Mesh) bool {
			sess.ReleaseMesh(&m)
			return true
		})
		textures.Range(func(_ asset.Handle[render.Texture], t render.Texture) bool {
			sess.ReleaseTexture(&t)
			return true
		})
	}()

	_, meshErr := asset.LoadAll(ctx, loader, meshes, meshSrcs)
	_, texErr := asset.LoadAll(ctx, loader, textures, texSrcs)
	fmt.Printf("%d mesh(es), %d texture(s) built on %s\n", meshes.Len(), textures.Len(), sess.Backend().Name)
	return errors.Join(meshErr, texErr)
}

// openSession opens the named backend, or the first compiled backend that
// opens when name is empty.
func openSession(name string) (render.Session, error) {
	if name == "" {
		return render.OpenFirst()
	}
	return render.Open(name)
}

func runWatch(ctx context.Context, a *app, args []string) error {
	dir := a.cfg.AssetsDir
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return errUsage
	}

	w, err := asset.NewWatcher(dir)
	if err != nil {
		return err
	}
	defer w.Close()
	loader := asset.NewLoader(asset.WithDecodeCache(a.cfg.DecodeCache))
	a.log.Info("watching", "dir", dir, "decode_cache", a.cfg.DecodeCache)

	for {
		select {
		case <-ctx.Done():
			hits, misses := loader.DecodeCacheStats()
			a.log.Debug("watch stopped", "cache_hits", hits, "cache_misses", misses)
			return nil
		case c, ok := <-w.Changes():
			if !ok {
				return nil
			}
			if c.Err != nil {
				a.log.Warn("change unreadable", "err", c.Err)
				continue
			}
			data, err := loader.Decode(c.Source)
			if err != nil {
				a.log.Error("decode failed", "source", c.Source.Path, "err", err)
				continue
			}
			a.log.Info("changed", "source", c.Source.Path, "asset", describe(data))
		}
	}
}
