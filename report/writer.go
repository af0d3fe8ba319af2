package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/ppjoin/blobstore"
	"github.com/hupe1980/ppjoin/codec"
)

// Extension is the file extension used by List.
const Extension = ".ppjr"

// Option configures a Writer or Reader.
type Option func(*options)

type options struct {
	codec       codec.Codec
	compression Compression
	logger      *slog.Logger
}

// WithCodec sets the codec a Writer encodes with. A Reader also accepts
// blobs written with it.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression sets the compression a Writer applies.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:       codec.Default,
		compression: CompressionNone,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	return o
}

// Writer stores reports in a blob store.
type Writer struct {
	store blobstore.BlobStore
	opts  options
}

// NewWriter creates a report writer.
func NewWriter(store blobstore.BlobStore, optFns ...Option) *Writer {
	return &Writer{store: store, opts: applyOptions(optFns)}
}

// Write encodes r and stores it under name.
func (w *Writer) Write(ctx context.Context, name string, r *Report) error {
	data, err := Encode(r, w.opts.codec, w.opts.compression)
	if err != nil {
		return err
	}
	if err := w.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("report: store %s: %w", name, err)
	}

	w.opts.logger.DebugContext(ctx, "Report written",
		"name", name,
		"matches", r.Len(),
		"bytes", len(data),
		"codec", w.opts.codec.Name(),
		"compression", w.opts.compression.String(),
	)
	return nil
}

// Reader loads reports from a blob store.
type Reader struct {
	store blobstore.BlobStore
	opts  options
}

// NewReader creates a report reader.
func NewReader(store blobstore.BlobStore, optFns ...Option) *Reader {
	return &Reader{store: store, opts: applyOptions(optFns)}
}

// Read loads the report stored under name.
// A missing report yields an error matching blobstore.ErrNotFound.
func (r *Reader) Read(ctx context.Context, name string) (*Report, error) {
	data, err := r.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("report: load %s: %w", name, err)
	}

	rep, err := Decode(data, r.opts.codec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	r.opts.logger.DebugContext(ctx, "Report read", "name", name, "matches", rep.Len())
	return rep, nil
}

// Stat returns the header of the report stored under name.
func (r *Reader) Stat(ctx context.Context, name string) (Header, error) {
	data, err := r.store.Get(ctx, name)
	if err != nil {
		return Header{}, fmt.Errorf("report: load %s: %w", name, err)
	}
	h, _, err := parseHeader(data)
	return h, err
}

// List returns the sorted names of stored reports that start with prefix.
func (r *Reader) List(ctx context.Context, prefix string) ([]string, error) {
	names, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if strings.HasSuffix(n, Extension) {
			out = append(out, n)
		}
	}
	return out, nil
}
