package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "phantomjs-installer/1.0"
	// maxRedirects bounds the redirect chain of a download
	maxRedirects = 10
)

// PackageDownloader fetches a distribution and unpacks it into targetDir.
type PackageDownloader interface {
	Download(ctx context.Context, pkg *Package, targetDir string) error
}

// HTTPDownloader downloads distributions over HTTP and extracts them.
// A download is attempted once.
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	extractor *Extractor
	progress  io.Writer
}

// NewHTTPDownloader creates a new downloader
func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
		extractor: NewExtractor(),
	}
}

// SetProgressWriter enables a progress bar written to w. A nil w disables it.
func (d *HTTPDownloader) SetProgressWriter(w io.Writer) {
	d.progress = w
}

// Download fetches pkg.DistURL and extracts it into targetDir.
func (d *HTTPDownloader) Download(ctx context.Context, pkg *Package, targetDir string) error {
	if pkg == nil || pkg.DistURL == "" {
		return fmt.Errorf("package has no dist url")
	}

	parent := filepath.Dir(targetDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	archive, err := os.CreateTemp(parent, ".phantomjs-*.download")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	archivePath := archive.Name()
	defer os.Remove(archivePath)

	err = d.fetch(ctx, pkg, archive)
	if closeErr := archive.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close temp file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	if err := d.extractor.Extract(archivePath, pkg.DistType, targetDir); err != nil {
		return fmt.Errorf("extract %s: %w", filepath.Base(pkg.DistURL), err)
	}

	return nil
}

// fetch performs a single GET of the package archive into dest.
func (d *HTTPDownloader) fetch(ctx context.Context, pkg *Package, dest io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pkg.DistURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status code: %d", pkg.DistURL, resp.StatusCode)
	}

	writer := dest
	if d.progress != nil {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetWriter(d.progress),
			progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s %s", pkg.Name, pkg.PrettyVersion)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(d.progress) }),
		)
		defer bar.Close()
		writer = io.MultiWriter(dest, bar)
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	return nil
}
