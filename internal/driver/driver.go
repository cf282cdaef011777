// Package driver discovers .jack files (a single file or everything inside
// a directory) and opens/closes the matching .vm sink for each.
package driver

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/libklein/jackc/internal/compiler"
	"github.com/libklein/jackc/internal/token"
	"github.com/libklein/jackc/internal/vmcode"
)

// CollectFiles returns the .jack files to compile for fileOrDir: the file
// itself if it is a file, or every case-insensitively .jack-suffixed entry
// directly inside it if it is a directory.
func CollectFiles(fileOrDir string) ([]string, error) {
	info, err := os.Stat(fileOrDir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot stat %q", fileOrDir)
	}

	if !info.IsDir() {
		return []string{fileOrDir}, nil
	}

	entries, err := os.ReadDir(fileOrDir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read directory %q", fileOrDir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !isJackFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(fileOrDir, entry.Name()))
	}
	return files, nil
}

func isJackFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".jack")
}

// OutputPath returns the sibling .vm path for a .jack source path.
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".vm"
}

// CompileSource compiles one Jack class read from r, writing VM code to w.
func CompileSource(r io.Reader, w io.Writer) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading source")
	}

	tokenizer, err := token.New(string(src))
	if err != nil {
		return errors.Wrap(err, "tokenizing")
	}

	engine := compiler.New(tokenizer, vmcode.New(w))
	if err := engine.Compile(); err != nil {
		return errors.Wrap(err, "compiling")
	}
	return nil
}

// CompileFile compiles the .jack file at path into its sibling .vm file,
// returning the output path written.
func CompileFile(path string) (outputPath string, err error) {
	in, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "opening %q for reading", path)
	}
	defer in.Close()

	outputPath = OutputPath(path)
	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return outputPath, errors.Wrapf(err, "opening %q for writing", outputPath)
	}
	defer out.Close()

	if err := CompileSource(in, out); err != nil {
		return outputPath, errors.Wrapf(err, "compiling %q", path)
	}
	return outputPath, nil
}
