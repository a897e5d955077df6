package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	pb "github.com/schollz/progressbar/v3"
)

type pbVal struct {
	w io.Writer
}

type pbKey struct{}

// Open enables progress rendering for operations run under ctx. Without
// it, bars are inert, which keeps tests and log-only runs quiet.
func Open(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, pbKey{}, pbVal{w})
}

type Progress struct {
	bar    *pb.ProgressBar
	prefix string
}

func (t *Progress) Add(cnt int64) {
	if t.bar == nil {
		return
	}

	t.bar.Add64(cnt)
}

func (t *Progress) Tick() {
	t.Add(1)
}

// Write lets a Progress sit in an io.MultiWriter under a download.
func (t *Progress) Write(p []byte) (int, error) {
	if t.bar == nil {
		return len(p), nil
	}

	return t.bar.Write(p)
}

func (t *Progress) Close() {
	if t.bar == nil {
		return
	}

	t.bar.Close()
}

func (t *Progress) On(step string) {
	if t.bar == nil {
		return
	}

	t.bar.Describe(t.prefix + ": " + step)
}

func newBar(ctx context.Context, total int64, desc string, bytes bool) *Progress {
	h := ctx.Value(pbKey{})
	if h == nil {
		return &Progress{}
	}

	val := h.(pbVal)

	opts := []pb.Option{
		pb.OptionSetDescription(desc),
		pb.OptionSetWriter(val.w),
		pb.OptionSetWidth(20),
		pb.OptionThrottle(65 * time.Millisecond),
		pb.OptionSetTheme(
			pb.Theme{Saucer: "=", SaucerPadding: " ", BarStart: "[", BarEnd: "]"},
		),
		pb.OptionOnCompletion(func() {
			fmt.Fprint(val.w, "\n")
		}),
		pb.OptionSpinnerType(14),
		pb.OptionFullWidth(),
	}

	if bytes {
		opts = append(opts, pb.OptionShowBytes(true))
	} else {
		opts = append(opts, pb.OptionShowCount(), pb.OptionShowIts())
	}

	bar := pb.NewOptions64(total, opts...)
	bar.RenderBlank()

	return &Progress{prefix: desc, bar: bar}
}

// Count reports progress in discrete entries, for archive walks.
func Count(ctx context.Context, total int64, desc string) *Progress {
	return newBar(ctx, total, desc, false)
}

// Bytes reports progress in bytes, for downloads. Pass -1 when the
// server does not announce a length.
func Bytes(ctx context.Context, total int64, desc string) *Progress {
	return newBar(ctx, total, desc, true)
}
