package asset

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout = 3000 * time.Millisecond
	maxImageBytes  = 5 << 20
)

//go:embed placeholder.png
var placeholderPNG []byte

type State string

const (
	StatePending     State = "PENDING"
	StateLoaded      State = "LOADED"
	StateFallback    State = "FALLBACK"
	StatePlaceholder State = "PLACEHOLDER"
)

var errUnsupportedImage = errors.New("unsupported image format")

// Request names a primary source and the fallbacks tried in order after it.
type Request struct {
	Primary   string
	Fallbacks []string
}

func (r Request) sources() []string {
	out := make([]string, 0, 1+len(r.Fallbacks))
	out = append(out, r.Primary)
	return append(out, r.Fallbacks...)
}

type Image struct {
	Ref    string
	Data   []byte
	Format string // fpdf image type: PNG or JPG
	Width  int
	Height int
	State  State
}

// Usable reports whether the image carries decodable bytes.
func (i Image) Usable() bool {
	return len(i.Data) > 0 && i.Format != "" && i.State != StatePending
}

// Resolver loads signature and logo images. It never fails: when every
// source is exhausted or the timeout elapses it yields the bundled
// placeholder.
type Resolver struct {
	client      *http.Client
	timeout     time.Duration
	placeholder Image
	sf          singleflight.Group
	logger      *zap.Logger
}

func NewResolver(client *http.Client, timeout time.Duration, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("asset.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.resolver")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	placeholder, err := decode("placeholder", placeholderPNG)
	if err != nil {
		// The embedded file is part of the build; a decode failure is a packaging bug.
		panic(fmt.Sprintf("asset: bundled placeholder is invalid: %v", err))
	}
	placeholder.State = StatePlaceholder

	return &Resolver{
		client:      client,
		timeout:     timeout,
		placeholder: placeholder,
		logger:      l,
	}
}

func (r *Resolver) Placeholder() Image {
	return r.placeholder
}

// Resolve settles one request within the resolver timeout.
func (r *Resolver) Resolve(ctx context.Context, req Request) Image {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.resolve(ctx, req)
}

// ResolveAll settles every request concurrently under one shared timeout.
func (r *Resolver) ResolveAll(ctx context.Context, reqs map[string]Request) map[string]Image {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		mu  sync.Mutex
		g   errgroup.Group
		out = make(map[string]Image, len(reqs))
	)
	for name, req := range reqs {
		name, req := name, req
		g.Go(func() error {
			img := r.resolve(ctx, req)
			mu.Lock()
			out[name] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (r *Resolver) resolve(ctx context.Context, req Request) Image {
	for i, src := range req.sources() {
		if src == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		img, err := r.load(ctx, src)
		if err != nil {
			r.logger.Warn("asset load failed",
				zap.String("source", src),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			continue
		}

		img.State = StateFallback
		if i == 0 {
			img.State = StateLoaded
		}
		return img
	}

	r.logger.Warn("asset unresolved, using placeholder", zap.String("primary", req.Primary))
	return r.placeholder
}

// load joins any in-flight fetch of src. The shared fetch is bounded by the
// resolver timeout only, so a caller with a short deadline gives up alone
// without failing the callers that joined it.
func (r *Resolver) load(ctx context.Context, src string) (Image, error) {
	ch := r.sf.DoChan(src, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		data, err := r.fetch(fetchCtx, src)
		if err != nil {
			return Image{}, err
		}
		return decode(src, data)
	})

	select {
	case <-ctx.Done():
		return Image{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Image{}, res.Err
		}
		return res.Val.(Image), nil
	}
}

func (r *Resolver) fetch(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(strings.TrimPrefix(src, "file://"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

func decode(ref string, data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}

	var pdfType string
	switch format {
	case "png":
		pdfType = "PNG"
	case "jpeg":
		pdfType = "JPG"
	default:
		return Image{}, errUnsupportedImage
	}

	return Image{
		Ref:    ref,
		Data:   data,
		Format: pdfType,
		Width:  cfg.Width,
		Height: cfg.Height,
		State:  StatePending,
	}, nil
}
