package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/annoboard/internal/ports/secondary"
)

// PaperCatalog implements secondary.PaperCatalog over a papers file.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// The document is either {"papers": [...]} or a bare list of papers.
// The file is re-read on every call.
type PaperCatalog struct {
	path string
}

// NewPaperCatalog creates a catalog reading from path.
func NewPaperCatalog(path string) *PaperCatalog {
	return &PaperCatalog{path: path}
}

// catalogPaper mirrors secondary.PaperRecord but accepts numeric ids and years.
type catalogPaper struct {
	ID        scalar `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Authors   string `json:"authors" yaml:"authors"`
	Year      scalar `json:"year" yaml:"year"`
	ZoteroKey string `json:"zotero_key" yaml:"zotero_key"`
	Notes     string `json:"notes" yaml:"notes"`
	NotesHTML string `json:"notes_html" yaml:"notes_html"`
}

type catalogFile struct {
	Papers []catalogPaper `json:"papers" yaml:"papers"`
}

// ListPapers reads every paper in the catalog, in file order.
func (c *PaperCatalog) ListPapers(ctx context.Context) ([]*secondary.PaperRecord, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read paper catalog: %w", err)
	}

	papers, err := c.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse paper catalog %s: %w", c.path, err)
	}

	records := make([]*secondary.PaperRecord, 0, len(papers))
	for _, p := range papers {
		records = append(records, &secondary.PaperRecord{
			ID:        string(p.ID),
			Title:     p.Title,
			Authors:   p.Authors,
			Year:      string(p.Year),
			ZoteroKey: p.ZoteroKey,
			Notes:     p.Notes,
			NotesHTML: p.NotesHTML,
		})
	}
	return records, nil
}

// GetPaper finds a paper by ID.
func (c *PaperCatalog) GetPaper(ctx context.Context, id string) (*secondary.PaperRecord, error) {
	records, err := c.ListPapers(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", id, secondary.ErrPaperNotFound)
}

func (c *PaperCatalog) decode(data []byte) ([]catalogPaper, error) {
	ext := strings.ToLower(filepath.Ext(c.path))
	isYAML := ext == ".yaml" || ext == ".yml"
	isList := bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) ||
		(isYAML && bytes.HasPrefix(bytes.TrimSpace(data), []byte("- ")))

	var papers []catalogPaper
	var err error
	switch {
	case isList && isYAML:
		err = yaml.Unmarshal(data, &papers)
	case isList:
		err = json.Unmarshal(data, &papers)
	default:
		var file catalogFile
		if isYAML {
			err = yaml.Unmarshal(data, &file)
		} else {
			err = json.Unmarshal(data, &file)
		}
		papers = file.Papers
	}
	return papers, err
}

// scalar is a string that also accepts numbers and booleans.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) == 0 {
		return fmt.Errorf("expected a string, number or boolean")
	}
	switch c := data[0]; {
	case c == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
	case c == '-' || (c >= '0' && c <= '9') || c == 't' || c == 'f':
		*s = scalar(data)
	default:
		return fmt.Errorf("expected a string, number or boolean, got %s", data)
	}
	return nil
}

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(node.Value)
	return nil
}
