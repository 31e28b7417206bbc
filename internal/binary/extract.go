package binary

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveKind is the container format of a release asset.
type ArchiveKind int

const (
	// KindRaw is a bare executable.
	KindRaw ArchiveKind = iota
	KindTarGz
	KindZip
)

func (k ArchiveKind) String() string {
	switch k {
	case KindTarGz:
		return "tar.gz"
	case KindZip:
		return "zip"
	default:
		return "raw"
	}
}

// KindOf classifies an asset purely by its file name suffix.
func KindOf(assetName string) ArchiveKind {
	lower := strings.ToLower(assetName)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return KindTarGz
	case strings.HasSuffix(lower, ".zip"):
		return KindZip
	default:
		return KindRaw
	}
}

// Extractor handles archive extraction
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks assetPath into destDir according to the suffix of
// assetName. Raw assets are copied to destDir/binaryName.
func (e *Extractor) Extract(assetPath, assetName, destDir, binaryName string) error {
	switch KindOf(assetName) {
	case KindTarGz:
		return e.ExtractTarGz(assetPath, destDir)
	case KindZip:
		return e.ExtractZip(assetPath, destDir)
	default:
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return fmt.Errorf("create dest dir: %w", err)
		}
		return copyFile(assetPath, filepath.Join(destDir, binaryName), 0755)
	}
}

// ExtractTarGz extracts a .tar.gz archive to a destination directory
func (e *Extractor) ExtractTarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

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
			if err := safeSymlink(destDir, header.Linkname, target); err != nil {
				return err
			}

		case tar.TypeLink:
			// Hard links are materialized as copies of an entry extracted
			// earlier in the archive.
			src, err := safeJoin(destDir, header.Linkname)
			if err != nil {
				return err
			}
			if err := copyFile(src, target, os.FileMode(header.Mode).Perm()); err != nil {
				return fmt.Errorf("hard link %s -> %s: %w", header.Name, header.Linkname, err)
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}

	return nil
}

// ExtractZip extracts a .zip archive to a destination directory
func (e *Extractor) ExtractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, f := range r.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case mode&os.ModeSymlink != 0:
			linkname, err := readZipEntry(f)
			if err != nil {
				return err
			}
			if err := safeSymlink(destDir, linkname, target); err != nil {
				return err
			}

		case mode.IsRegular():
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("open zip entry %s: %w", f.Name, err)
			}
			err = writeFile(target, rc, mode.Perm())
			rc.Close()
			if err != nil {
				return err
			}
		}
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

// safeJoin resolves an archive entry name below root and rejects names
// that would land outside of it.
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, name)
	if !withinDir(root, target) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}

// safeSymlink creates linkPath -> linkname, but only if the link resolves
// inside root.
func safeSymlink(root, linkname, linkPath string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("illegal symlink target: %s -> %s", linkPath, linkname)
	}
	resolved := filepath.Join(filepath.Dir(linkPath), linkname)
	if !withinDir(root, resolved) {
		return fmt.Errorf("illegal symlink target: %s -> %s", linkPath, linkname)
	}
	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", linkPath, err)
	}
	if err := os.Symlink(linkname, linkPath); err != nil {
		return fmt.Errorf("create symlink %s: %w", linkPath, err)
	}
	return nil
}

func withinDir(root, path string) bool {
	return strings.HasPrefix(filepath.Clean(path), filepath.Clean(root)+string(os.PathSeparator))
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0600)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}
	return nil
}

func readZipEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, 4096))
	if err != nil {
		return "", fmt.Errorf("read zip entry %s: %w", f.Name, err)
	}
	return string(data), nil
}

// copyFile copies src to dst with the given permissions.
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	return writeFile(dst, in, perm)
}
