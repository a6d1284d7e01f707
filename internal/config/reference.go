package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Reference table file names and their optional top-level keys
const (
	ParametersFile = "parametros_computo_anual.yaml"
	IndicesFile    = "indices_revalorizacion.yaml"
	CapsFile       = "topes_cotizacion.yaml"

	parametersKey = "parametros_computo_anual"
	indicesKey    = "indices_revalorizacion"
	capsKey       = "topes_cotizacion"
)

// DefaultReferenceDir is used when neither a flag nor BASEREG_REFERENCE_DIR is set
const DefaultReferenceDir = "configs/reference"

// ReferenceLoader reads the three reference tables from a directory
type ReferenceLoader struct {
	Dir string
}

// NewReferenceLoader creates a loader rooted at dir
func NewReferenceLoader(dir string) *ReferenceLoader {
	if dir == "" {
		dir = DefaultReferenceDir
	}
	return &ReferenceLoader{Dir: dir}
}

// Load reads every table. A missing file yields an empty table; a malformed
// one is an error. If all three tables end up empty the reference data is
// unusable and ReferenceDataExhausted is returned.
func (rl *ReferenceLoader) Load() (*domain.ReferenceData, error) {
	ref := &domain.ReferenceData{
		Parameters: domain.ComputationParameters{},
		Indices:    domain.RevalorizationIndexTable{},
		Caps:       domain.ContributionCapTable{},
	}

	if err := rl.loadTable(ParametersFile, parametersKey, &ref.Parameters); err != nil {
		return nil, err
	}

	rawIndices := map[string]decimal.Decimal{}
	if err := rl.loadTable(IndicesFile, indicesKey, &rawIndices); err != nil {
		return nil, err
	}
	for key, idx := range rawIndices {
		ym, err := domain.ParseYearMonth(key)
		if err != nil {
			return nil, fmt.Errorf("invalid index key in %s: %w", IndicesFile, err)
		}
		ref.Indices[ym] = idx
	}

	if err := rl.loadTable(CapsFile, capsKey, &ref.Caps); err != nil {
		return nil, err
	}

	if ref.IsEmpty() {
		return nil, domain.NewValidationError(domain.KindReferenceDataExhausted, "reference", rl.Dir, "no reference tables could be loaded")
	}
	return ref, nil
}

// loadTable decodes file into out, unwrapping a top-level key when the
// table is nested under it
func (rl *ReferenceLoader) loadTable(file, key string, out interface{}) error {
	path := filepath.Join(rl.Dir, file)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	node := doc.Content[0]
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				node = node.Content[i+1]
				break
			}
		}
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// TableInfo summarises one reference table
type TableInfo struct {
	Entries int    `json:"entries" yaml:"entries"`
	First   string `json:"first,omitempty" yaml:"first,omitempty"`
	Last    string `json:"last,omitempty" yaml:"last,omitempty"`
}

// ReferenceInfo summarises the loaded reference data for the config-info surfaces
type ReferenceInfo struct {
	Directory  string                `json:"directory,omitempty" yaml:"directory,omitempty"`
	Parameters TableInfo             `json:"computation_parameters" yaml:"computation_parameters"`
	Indices    TableInfo             `json:"revalorization_indices" yaml:"revalorization_indices"`
	Caps       TableInfo             `json:"contribution_caps" yaml:"contribution_caps"`
	Legacy     domain.YearParameters `json:"legacy_parameters" yaml:"legacy_parameters"`
}

// Describe builds a ReferenceInfo for ref
func Describe(dir string, ref *domain.ReferenceData) ReferenceInfo {
	info := ReferenceInfo{Directory: dir, Legacy: domain.LegacyParameters}
	if ref == nil {
		return info
	}
	info.Parameters = yearTableInfo(ref.Parameters)
	info.Caps = yearTableInfo(ref.Caps)

	info.Indices.Entries = len(ref.Indices)
	if len(ref.Indices) > 0 {
		months := make([]domain.YearMonth, 0, len(ref.Indices))
		for ym := range ref.Indices {
			months = append(months, ym)
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
		info.Indices.First = months[0].String()
		info.Indices.Last = months[len(months)-1].String()
	}
	return info
}

func yearTableInfo[V any](table map[int]V) TableInfo {
	info := TableInfo{Entries: len(table)}
	if first, last, ok := domain.YearRange(table); ok {
		info.First = fmt.Sprint(first)
		info.Last = fmt.Sprint(last)
	}
	return info
}
