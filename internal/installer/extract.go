package installer

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

var (
	magicBzip2 = []byte("BZh")
	magicGzip  = []byte{0x1f, 0x8b}
)

// Extractor handles archive extraction
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into targetDir, replacing whatever targetDir
// held before. If the archive has a single top-level directory, its contents
// become the contents of targetDir.
func (e *Extractor) Extract(archivePath string, distType DistType, targetDir string) error {
	parent := filepath.Dir(targetDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".phantomjs-extract-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	switch distType {
	case DistZip:
		err = e.ExtractZip(archivePath, staging)
	case DistTar:
		err = e.ExtractTar(archivePath, staging)
	default:
		err = fmt.Errorf("unsupported dist type: %s", distType)
	}
	if err != nil {
		return err
	}

	src, err := contentRoot(staging)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(targetDir); err != nil {
		return fmt.Errorf("clear target dir: %w", err)
	}
	if err := os.Rename(src, targetDir); err != nil {
		return fmt.Errorf("move extracted files: %w", err)
	}

	return nil
}

// contentRoot returns the single top-level directory of dir, or dir itself.
func contentRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read extracted files: %w", err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

// ExtractZip extracts a .zip archive to a destination directory
func (e *Extractor) ExtractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, file := range reader.File {
		target, err := safeJoin(destDir, file.Name)
		if err != nil {
			return err
		}
		if err := rejectSymlinkPath(destDir, target); err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		mode := file.Mode().Perm()
		if mode == 0 {
			mode = 0644
		}

		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", file.Name, err)
		}
		err = writeFile(target, rc, mode)
		rc.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// ExtractTar extracts a tar archive to a destination directory. The
// compression (bzip2, gzip or none) is detected from the archive header.
func (e *Extractor) ExtractTar(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	stream, err := decompress(bufio.NewReader(archiveFile))
	if err != nil {
		return err
	}
	defer stream.Close()

	tarReader := tar.NewReader(stream)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}
		if err := rejectSymlinkPath(destDir, target); err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := writeFile(target, tarReader, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}

		case tar.TypeSymlink:
			if err := checkLinkTarget(destDir, target, header.Linkname); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}

	return nil
}

// decompress wraps r in the decompressor matching its magic bytes.
func decompress(r *bufio.Reader) (io.ReadCloser, error) {
	header, err := r.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read archive header: %w", err)
	}

	switch {
	case bytes.HasPrefix(header, magicBzip2):
		return io.NopCloser(bzip2.NewReader(r)), nil
	case bytes.HasPrefix(header, magicGzip):
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return gzipReader, nil
	default:
		return io.NopCloser(r), nil
	}
}

// safeJoin joins name onto destDir and rejects entries escaping destDir.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !within(destDir, target) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}

// within reports whether path is destDir or lies below it.
func within(destDir, path string) bool {
	root := filepath.Clean(destDir)
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}

// checkLinkTarget rejects a symlink at target pointing outside destDir.
func checkLinkTarget(destDir, target, linkname string) error {
	if linkname == "" || filepath.IsAbs(linkname) {
		return fmt.Errorf("illegal symlink %s -> %q", target, linkname)
	}
	if !within(destDir, filepath.Join(filepath.Dir(target), linkname)) {
		return fmt.Errorf("illegal symlink %s -> %s: points outside the archive", target, linkname)
	}
	return nil
}

// rejectSymlinkPath fails if target, or any directory between destDir and
// target, already exists as a symlink. Writes never follow links created by
// earlier entries.
func rejectSymlinkPath(destDir, target string) error {
	rel, err := filepath.Rel(destDir, target)
	if err != nil {
		return fmt.Errorf("illegal file path: %s", target)
	}
	if rel == "." {
		return nil
	}

	current := filepath.Clean(destDir)
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", current, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("illegal file path: %s passes through symlink %s", rel, part)
		}
	}
	return nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(outFile, r); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}
	return nil
}

// SetExecutable sets executable permissions on a file
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
