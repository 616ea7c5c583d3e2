package installer

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// archiveEntry describes a file in a test archive. A name ending in "/" is a
// directory; a non-empty linkname makes a tar symlink.
type archiveEntry struct {
	name     string
	content  string
	mode     int64
	linkname string
}

func buildZip(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		header := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		mode := os.FileMode(e.mode)
		if mode == 0 {
			mode = 0644
		}
		if e.name[len(e.name)-1] == '/' {
			mode = os.ModeDir | 0755
		}
		header.SetMode(mode)

		fw, err := w.CreateHeader(header)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("write zip entry %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildTar(t *testing.T, entries []archiveEntry, compress bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	var gz *gzip.Writer
	tw := tar.NewWriter(&buf)
	if compress {
		gz = gzip.NewWriter(&buf)
		tw = tar.NewWriter(gz)
	}

	for _, e := range entries {
		header := &tar.Header{Name: e.name, Mode: e.mode}
		if header.Mode == 0 {
			header.Mode = 0644
		}
		if e.linkname != "" {
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.linkname
			header.Mode = 0777
		} else if e.name[len(e.name)-1] == '/' {
			header.Typeflag = tar.TypeDir
			header.Mode = 0755
		} else {
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.content))
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write tar header %s: %v", e.name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.content)); err != nil {
				t.Fatalf("write tar entry %s: %v", e.name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			t.Fatalf("close gzip: %v", err)
		}
	}
	return buf.Bytes()
}

// readFixture returns a file from testdata.
func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

func writeArchive(t *testing.T, data []byte, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}

// listFiles returns the slash-separated relative paths of all regular files under dir.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	sort.Strings(files)
	return files
}

// phantomLayout is the layout of a modern PhantomJS release archive.
func phantomLayout(top, exe string) []archiveEntry {
	return []archiveEntry{
		{name: top + "/"},
		{name: top + "/bin/"},
		{name: top + "/bin/" + exe, content: "#!phantomjs", mode: 0755},
		{name: top + "/README.md", content: "readme"},
		{name: top + "/LICENSE.BSD", content: "license"},
	}
}
