// Package assets loads the images a layout references for role icons, emojis,
// stickers and guild artwork.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	cache "github.com/Black-And-White-Club/discord-guild-generator/bigcache"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/bwmarrin/discordgo"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes bounds a single image. Discord's own limits are lower.
const DefaultMaxBytes = 10 << 20

// Asset is a loaded image.
type Asset struct {
	Name        string
	ContentType string
	Data        []byte
}

// DataURI encodes the asset the way the REST API expects icons and emoji images.
func (a *Asset) DataURI() string {
	return "data:" + a.ContentType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// File wraps the asset for multipart uploads.
func (a *Asset) File() *discordgo.File {
	return &discordgo.File{Name: a.Name, ContentType: a.ContentType, Reader: bytes.NewReader(a.Data)}
}

// Loader is what the generator resolves image references through.
type Loader interface {
	Load(ctx context.Context, ref, baseDir string) (*Asset, error)
}

// Options configures a Resolver. Every field is optional.
type Options struct {
	HTTPClient *http.Client
	// Objects serves s3://bucket/key references. Without it those references fail.
	Objects  ObjectStore
	Cache    cache.CacheInterface
	MaxBytes int64
	Logger   *slog.Logger
}

// Resolver loads data:, http(s)://, s3:// and file references.
type Resolver struct {
	client   *http.Client
	objects  ObjectStore
	cache    cache.CacheInterface
	maxBytes int64
	logger   *slog.Logger
}

var _ Loader = (*Resolver)(nil)

func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		client:   opts.HTTPClient,
		objects:  opts.Objects,
		cache:    opts.Cache,
		maxBytes: opts.MaxBytes,
		logger:   opts.Logger,
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: 30 * time.Second}
	}
	if r.maxBytes <= 0 {
		r.maxBytes = DefaultMaxBytes
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Load resolves ref. Relative file paths are joined to baseDir.
func (r *Resolver) Load(ctx context.Context, ref, baseDir string) (*Asset, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty image reference")
	}
	if strings.HasPrefix(ref, "data:") {
		return r.decodeDataURI(ref)
	}

	key := ref
	if !isRemote(ref) {
		key = localPath(ref, baseDir)
	}
	if asset, ok := r.cached(key); ok {
		return asset, nil
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = r.fetchHTTP(ctx, ref)
	case strings.HasPrefix(ref, "s3://"):
		data, err = r.fetchObject(ctx, ref)
	default:
		data, err = r.readFile(key)
	}
	if err != nil {
		return nil, err
	}

	asset := &Asset{Name: baseName(key), ContentType: mimetype.Detect(data).String(), Data: data}
	r.store(key, asset)
	return asset, nil
}

func (r *Resolver) fetchHTTP(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url %q: %w", ref, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %q: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %q: status %d", ref, resp.StatusCode)
	}
	return r.readLimited(ref, resp.Body)
}

func (r *Resolver) fetchObject(ctx context.Context, ref string) ([]byte, error) {
	if r.objects == nil {
		return nil, fmt.Errorf("image %q: no object storage configured", ref)
	}
	bucket, key, err := parseObjectRef(ref)
	if err != nil {
		return nil, err
	}
	body, err := r.objects.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", ref, err)
	}
	defer body.Close()
	return r.readLimited(ref, body)
}

func (r *Resolver) readFile(p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return r.readLimited(p, f)
}

func (r *Resolver) readLimited(ref string, body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %q: %w", ref, err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("image %q exceeds %d bytes", ref, r.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image %q is empty", ref)
	}
	return data, nil
}

// Cached entries are "<content type>\x00<name>\x00<bytes>".
func (r *Resolver) cached(key string) (*Asset, bool) {
	if r.cache == nil {
		return nil, false
	}
	raw, err := r.cache.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.logger.Warn("Asset cache read failed", attr.String("ref", key), attr.Error(err))
		}
		return nil, false
	}
	parts := bytes.SplitN(raw, []byte{0}, 3)
	if len(parts) != 3 {
		return nil, false
	}
	return &Asset{ContentType: string(parts[0]), Name: string(parts[1]), Data: parts[2]}, true
}

func (r *Resolver) store(key string, a *Asset) {
	if r.cache == nil {
		return
	}
	buf := make([]byte, 0, len(a.ContentType)+len(a.Name)+len(a.Data)+2)
	buf = append(buf, a.ContentType...)
	buf = append(buf, 0)
	buf = append(buf, a.Name...)
	buf = append(buf, 0)
	buf = append(buf, a.Data...)
	if err := r.cache.Set(key, buf); err != nil {
		r.logger.Warn("Asset cache write failed", attr.String("ref", key), attr.Error(err))
	}
}

func (r *Resolver) decodeDataURI(ref string) (*Asset, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	contentType, isBase64 := strings.CutSuffix(meta, ";base64")
	if isBase64 && int64(base64.StdEncoding.DecodedLen(len(payload))) > r.maxBytes+2 {
		return nil, fmt.Errorf("data URI exceeds %d bytes", r.maxBytes)
	}
	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		data = []byte(unescaped)
	}
	if len(data) == 0 {
		return nil, errors.New("data URI has no content")
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("data URI exceeds %d bytes", r.maxBytes)
	}
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	return &Asset{Name: "image", ContentType: contentType, Data: data}, nil
}

func parseObjectRef(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("invalid object reference %q: %w", ref, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("object reference %q must be s3://bucket/key", ref)
	}
	return u.Host, key, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "s3://")
}

func localPath(ref, baseDir string) string {
	p := strings.TrimPrefix(ref, "file://")
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

func baseName(key string) string {
	if u, err := url.Parse(key); err == nil && u.Scheme != "" && u.Path != "" {
		return path.Base(u.Path)
	}
	return filepath.Base(key)
}
