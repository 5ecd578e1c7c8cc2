// Package boxblur implements a separable box-blur filter for planar
// 8-bit video frames.
//
// Each image component (luma, the two chroma planes, alpha) is blurred
// independently with its own radius and power: the box kernel is
// applied horizontally and then vertically, repeated power times per
// line, which approximates a Gaussian response for higher powers.
// Radii are given as expressions over the frame geometry, so one
// configuration scales across stream resolutions.
//
// Example:
//
//	options := boxblur.NewOptions()
//	options.LumaRadius = "min(w,h)/10"
//	options.ChromaRadius = "min(cw,ch)/10"
//
//	filter, err := boxblur.New(options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := filter.Configure(video.YUV420P, 1920, 1080); err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := filter.Apply(frame)
//	if err != nil {
//	    log.Fatal(err)
//	}
package boxblur

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/boxblur/blur"
	"github.com/opd-ai/boxblur/eval"
	"github.com/opd-ai/boxblur/video"
)

// Component indices into the per-component parameter set.
const (
	componentLuma = iota
	componentChroma
	componentAlpha
	componentCount
)

var componentNames = [componentCount]string{"luma", "chroma", "alpha"}

// Options contains the per-component blur parameters.
//
// Radii are expressions over the frame geometry variables w, h, cw,
// ch, hsub and vsub (see the eval package). An empty chroma or alpha
// radius inherits the luma expression; a negative chroma or alpha
// power inherits the luma power.
type Options struct {
	LumaRadius   string
	LumaPower    int
	ChromaRadius string
	ChromaPower  int
	AlphaRadius  string
	AlphaPower   int
}

// NewOptions returns options with the default parameters: luma radius
// 2 applied twice, chroma and alpha inheriting from luma.
func NewOptions() *Options {
	return &Options{
		LumaRadius:  "2",
		LumaPower:   2,
		ChromaPower: -1,
		AlphaPower:  -1,
	}
}

// componentParam is a fully resolved per-component parameter record.
type componentParam struct {
	radiusExpr string
	power      int
}

// resolveParams fills the missing chroma and alpha parameters from the
// luma parameter, producing a fully populated record per component.
func resolveParams(opts *Options) ([componentCount]componentParam, error) {
	var params [componentCount]componentParam

	if opts == nil || opts.LumaRadius == "" {
		return params, ErrLumaRadiusNotSet
	}
	if opts.LumaPower < 0 {
		return params, fmt.Errorf("%w: luma power %d", ErrInvalidPower, opts.LumaPower)
	}

	params[componentLuma] = componentParam{opts.LumaRadius, opts.LumaPower}

	params[componentChroma] = componentParam{opts.ChromaRadius, opts.ChromaPower}
	if params[componentChroma].radiusExpr == "" {
		params[componentChroma].radiusExpr = opts.LumaRadius
	}
	if params[componentChroma].power < 0 {
		params[componentChroma].power = opts.LumaPower
	}

	params[componentAlpha] = componentParam{opts.AlphaRadius, opts.AlphaPower}
	if params[componentAlpha].radiusExpr == "" {
		params[componentAlpha].radiusExpr = opts.LumaRadius
	}
	if params[componentAlpha].power < 0 {
		params[componentAlpha].power = opts.LumaPower
	}

	return params, nil
}

// Filter applies a separable box blur to every plane of a video frame.
//
// A Filter is created with New, bound to a frame geometry with
// Configure and then applied to any number of frames of that geometry.
// Configure revalidates the radii and reuses the engine's scratch
// buffers when the geometry is unchanged.
type Filter struct {
	mu     sync.Mutex
	params [componentCount]componentParam

	configured bool
	format     video.PixelFormat
	width      int
	height     int
	radius     [video.MaxPlanes]int
	power      [video.MaxPlanes]int
	engine     *blur.Engine
}

// New creates a filter from the given options, resolving missing
// chroma and alpha parameters from the luma parameter.
func New(opts *Options) (*Filter, error) {
	params, err := resolveParams(opts)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "New",
			"error":    err,
		}).Error("Filter option resolution failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":      "New",
		"luma_radius":   params[componentLuma].radiusExpr,
		"luma_power":    params[componentLuma].power,
		"chroma_radius": params[componentChroma].radiusExpr,
		"chroma_power":  params[componentChroma].power,
		"alpha_radius":  params[componentAlpha].radiusExpr,
		"alpha_power":   params[componentAlpha].power,
	}).Info("Box-blur filter created")

	return &Filter{params: params}, nil
}

// Configure binds the filter to a frame geometry: radius expressions
// are evaluated against the geometry, the results validated against
// the plane dimensions, and the engine's scratch buffers allocated.
//
// Configure must succeed before any frame is processed, and must be
// called again when the stream geometry changes. A validation failure
// leaves the filter unconfigured.
func (f *Filter) Configure(format video.PixelFormat, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	desc, err := format.Desc()
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", video.ErrInvalidDimensions, width, height)
	}

	f.configured = false

	env := eval.NewEnv(width, height, desc.Log2ChromaW, desc.Log2ChromaH)

	var radii [componentCount]int
	for comp := 0; comp < componentCount; comp++ {
		r, err := eval.Radius(f.params[comp].radiusExpr, env)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":  "Filter.Configure",
				"component": componentNames[comp],
				"error":     err,
			}).Error("Radius expression evaluation failed")
			return fmt.Errorf("%w: %s: %v", ErrInvalidExpression, componentNames[comp], err)
		}
		radii[comp] = r
	}

	// Luma and alpha blur full-resolution planes, chroma the
	// subsampled planes.
	if err := checkRadius(componentLuma, radii[componentLuma], env.W, env.H); err != nil {
		return err
	}
	if err := checkRadius(componentChroma, radii[componentChroma], env.CW, env.CH); err != nil {
		return err
	}
	if err := checkRadius(componentAlpha, radii[componentAlpha], env.W, env.H); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":      "Filter.Configure",
		"format":        format.String(),
		"width":         width,
		"height":        height,
		"chroma_width":  env.CW,
		"chroma_height": env.CH,
		"luma_radius":   radii[componentLuma],
		"luma_power":    f.params[componentLuma].power,
		"chroma_radius": radii[componentChroma],
		"chroma_power":  f.params[componentChroma].power,
		"alpha_radius":  radii[componentAlpha],
		"alpha_power":   f.params[componentAlpha].power,
	}).Info("Box-blur filter configured")

	// Scratch buffers survive reconfiguration to the same geometry.
	if f.engine == nil || f.format != format || f.width != width || f.height != height {
		engine, err := blur.NewEngine(width, height, desc.PlaneCount)
		if err != nil {
			return err
		}
		f.engine = engine
	}

	f.format = format
	f.width = width
	f.height = height

	f.radius[0] = radii[componentLuma]
	f.radius[1] = radii[componentChroma]
	f.radius[2] = radii[componentChroma]
	f.radius[3] = radii[componentAlpha]

	f.power[0] = f.params[componentLuma].power
	f.power[1] = f.params[componentChroma].power
	f.power[2] = f.params[componentChroma].power
	f.power[3] = f.params[componentAlpha].power

	f.configured = true
	return nil
}

// checkRadius validates a resolved radius against the blurred plane's
// dimensions: the mirrored window must fit the shorter axis.
func checkRadius(comp, radius, w, h int) error {
	limit := w
	if h < limit {
		limit = h
	}
	if radius < 0 || 2*radius > limit {
		return fmt.Errorf("%w: %s radius %d, must be >= 0 and <= %d",
			ErrInvalidRadius, componentNames[comp], radius, limit/2)
	}
	return nil
}

// Apply blurs every plane of the input frame into a newly allocated
// output frame of identical format and dimensions.
//
// Every present plane completes its horizontal pass before any
// vertical pass begins; within each sweep the planes are processed
// concurrently, which is safe because a plane's vertical pass depends
// only on that same plane's horizontal output and each plane sweep
// uses its own scratch pair. The input frame is only read.
func (f *Filter) Apply(in *video.Frame) (*video.Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.configured {
		return nil, ErrNotConfigured
	}
	if in == nil {
		return nil, fmt.Errorf("input frame cannot be nil")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Format != f.format || in.Width != f.width || in.Height != f.height {
		return nil, fmt.Errorf("%w: got %s %dx%d, configured %s %dx%d",
			ErrFormatMismatch, in.Format, in.Width, in.Height,
			f.format, f.width, f.height)
	}

	out, err := video.NewFrame(f.format, f.width, f.height)
	if err != nil {
		return nil, err
	}

	planeCount := in.PlaneCount()

	logrus.WithFields(logrus.Fields{
		"function":    "Filter.Apply",
		"format":      f.format.String(),
		"width":       f.width,
		"height":      f.height,
		"plane_count": planeCount,
	}).Debug("Applying box blur")

	var wg sync.WaitGroup
	for plane := 0; plane < planeCount; plane++ {
		wg.Add(1)
		go func(plane int) {
			defer wg.Done()
			w, h := in.PlaneDims(plane)
			f.engine.Horizontal(out.Planes[plane], out.Strides[plane],
				in.Planes[plane], in.Strides[plane],
				w, h, f.radius[plane], f.power[plane], plane)
		}(plane)
	}
	wg.Wait()

	for plane := 0; plane < planeCount; plane++ {
		wg.Add(1)
		go func(plane int) {
			defer wg.Done()
			w, h := out.PlaneDims(plane)
			f.engine.Vertical(out.Planes[plane], out.Strides[plane],
				out.Planes[plane], out.Strides[plane],
				w, h, f.radius[plane], f.power[plane], plane)
		}(plane)
	}
	wg.Wait()

	return out, nil
}

// Geometry returns the configured format and dimensions. The boolean
// reports whether the filter has been configured.
func (f *Filter) Geometry() (format video.PixelFormat, width, height int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.format, f.width, f.height, f.configured
}

// PlaneParams returns the resolved radius and power for plane i.
// It reports zeros before a successful Configure.
func (f *Filter) PlaneParams(i int) (radius, power int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.configured || i < 0 || i >= video.MaxPlanes {
		return 0, 0
	}
	return f.radius[i], f.power[i]
}
