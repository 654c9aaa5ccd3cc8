package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// MaxLineBytes bounds a single input line. Lines wider than a machine are
// still read so that they end up reported as oversized parcels.
const MaxLineBytes = 16 << 20

// Source yields raw parcel blocks.
type Source interface {
	Blocks() ([][]string, error)
	Describe() string
}

// SplitBlocks reads r line by line and groups consecutive non-blank lines.
// Whitespace-only lines end the current block.
func SplitBlocks(r io.Reader) ([][]string, error) {
	var (
		blocks  [][]string
		current []string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks, nil
}

// FileSource reads blocks from a single text file.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Blocks() ([][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	return SplitBlocks(f)
}

func (s *FileSource) Describe() string {
	return "file " + s.Path
}

// DirSource reads every *.txt file in a directory. Files are taken in
// natural order so parcels-2.txt comes before parcels-10.txt.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source for dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Blocks() ([][]string, error) {
	info, err := os.Stat(s.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: directory %s", ErrSourceNotFound, s.Dir)
	}

	paths, err := s.files()
	if err != nil {
		return nil, err
	}

	var blocks [][]string
	for _, path := range paths {
		fileBlocks, err := NewFileSource(path).Blocks()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, fileBlocks...)
	}
	return blocks, nil
}

func (s *DirSource) files() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Dir, err)
	}
	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}

func (s *DirSource) Describe() string {
	return "directory " + s.Dir
}

// ReaderSource reads blocks from an arbitrary reader once.
type ReaderSource struct {
	name string
	r    io.Reader
}

// NewReaderSource wraps r. The name is only used by Describe.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

func (s *ReaderSource) Blocks() ([][]string, error) {
	return SplitBlocks(s.r)
}

func (s *ReaderSource) Describe() string {
	return s.name
}

// StaticSource serves blocks that were split beforehand.
type StaticSource struct {
	blocks [][]string
}

// NewStaticSource copies blocks into a new source.
func NewStaticSource(blocks [][]string) *StaticSource {
	copied := make([][]string, len(blocks))
	for i, b := range blocks {
		copied[i] = slices.Clone(b)
	}
	return &StaticSource{blocks: copied}
}

func (s *StaticSource) Blocks() ([][]string, error) {
	out := make([][]string, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = slices.Clone(b)
	}
	return out, nil
}

func (s *StaticSource) Describe() string {
	return fmt.Sprintf("%d static blocks", len(s.blocks))
}
