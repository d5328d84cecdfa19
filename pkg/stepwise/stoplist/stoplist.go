package stoplist

import (
	_ "embed"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed english.yaml
var englishYAML []byte

// Manager holds the stopword set. It is read-only after construction and
// safe to share between goroutines.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return &Manager{stops: stops}
}

// English returns a manager seeded with the built-in English function words.
func English() *Manager {
	terms, err := parse(englishYAML)
	if err != nil {
		panic("stoplist: built-in list is invalid: " + err.Error())
	}
	return NewManager(terms)
}

// Load reads a YAML stoplist ("terms: [...]") from fs.
func Load(fs afero.Fs, path string) (*Manager, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	terms, err := parse(data)
	if err != nil {
		return nil, err
	}
	return NewManager(terms), nil
}

func parse(data []byte) ([]string, error) {
	var sl struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}
	return sl.Terms, nil
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}
