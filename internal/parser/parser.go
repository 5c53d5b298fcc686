package parser

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/takak2166/worklist/internal/logger"
	"github.com/takak2166/worklist/internal/models"
)

const (
	// Separator splits the date segment from the label
	Separator = "_"

	// NormalizeNFC composes decomposed file names before parsing
	NormalizeNFC = "nfc"
)

// Options controls how file names are prepared before parsing
type Options struct {
	// Normalize is "" (names used as-is) or NormalizeNFC
	Normalize string
}

// Parser converts directory entry names into work list entries
type Parser struct {
	opts Options
}

// New creates a new Parser instance
func New(opts Options) (*Parser, error) {
	switch strings.ToLower(opts.Normalize) {
	case "":
	case NormalizeNFC:
		opts.Normalize = NormalizeNFC
	default:
		return nil, fmt.Errorf("unsupported normalization %q", opts.Normalize)
	}
	return &Parser{opts: opts}, nil
}

// Parse parses a single file name with the default options
func Parse(fileName string) (models.Entry, bool) {
	return (&Parser{}).Parse(fileName)
}

// Parse converts fileName into an Entry. It reports false when the name does
// not follow the <number>_<label> convention.
func (p *Parser) Parse(fileName string) (models.Entry, bool) {
	if p.opts.Normalize == NormalizeNFC {
		fileName = norm.NFC.String(fileName)
	}

	base := baseName(fileName)
	tokens := strings.Split(base, Separator)
	if len(tokens) != 2 {
		return models.Entry{}, false
	}

	date, ok := leadingInt(tokens[0])
	if !ok {
		return models.Entry{}, false
	}

	return models.Entry{
		Source:      base,
		SortKey:     date,
		DisplayName: fmt.Sprintf("[%s] %s", tokens[0], strings.Replace(tokens[1], "-", "", 1)),
	}, true
}

// ParseAll parses names in order, drops the ones that do not match and sorts
// the rest by date, newest first. Entries with equal dates keep their order.
func (p *Parser) ParseAll(names []string) []models.Entry {
	entries := make([]models.Entry, 0, len(names))
	for _, name := range names {
		entry, ok := p.Parse(name)
		if !ok {
			logger.Debug("Skipping entry", map[string]interface{}{
				"name": name,
			})
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortKey > entries[j].SortKey
	})
	return entries
}

// baseName returns the last path element without its extension. A dot that
// only has other dots before it does not start an extension (".profile").
func baseName(fileName string) string {
	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}

	idx := strings.LastIndex(name, ".")
	if idx <= 0 || strings.Trim(name[:idx], ".") == "" {
		return name
	}
	return name[:idx]
}

// leadingInt parses the integer prefix of s: optional leading whitespace, an
// optional sign, then at least one decimal digit. Anything after the digits is
// ignored. Values outside the int64 range saturate.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n uint64
	digits := 0
	overflow := false
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		d := uint64(s[digits] - '0')
		if n > (math.MaxUint64-d)/10 {
			overflow = true
		} else {
			n = n*10 + d
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}

	switch {
	case negative && (overflow || n > math.MaxInt64+1):
		return math.MinInt64, true
	case negative:
		return -int64(n-1) - 1, true
	case overflow || n > math.MaxInt64:
		return math.MaxInt64, true
	default:
		return int64(n), true
	}
}
