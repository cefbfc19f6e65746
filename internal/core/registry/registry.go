// Package registry holds the named similarity algorithms and model scorers a
// reconciliation pass can refer to.
package registry

import (
	"sort"
	"sync"

	"github.com/agenthands/recon/internal/core/scorer"
	"github.com/agenthands/recon/internal/core/similarity"
	"github.com/agenthands/recon/internal/errors"
)

// Registry is a read-write locked store of algorithms and models.
// Lookups may run concurrently; registrations exclude everything else.
type Registry struct {
	mu         sync.RWMutex
	algorithms map[string]similarity.Algorithm
	models     map[string]scorer.Scorer
}

// DefaultAlgorithms are registered by New under their canonical names.
var DefaultAlgorithms = []similarity.Kind{
	similarity.Levenshtein,
	similarity.JaroWinkler,
	similarity.Jaccard,
	similarity.Cosine,
	similarity.Soundex,
	similarity.Metaphone,
}

// New returns a registry holding the default algorithms and no models.
func New() *Registry {
	r := &Registry{
		algorithms: make(map[string]similarity.Algorithm),
		models:     make(map[string]scorer.Scorer),
	}
	for _, kind := range DefaultAlgorithms {
		r.algorithms[kind.String()] = similarity.New(kind)
	}
	return r
}

// RegisterAlgorithm adds or replaces the algorithm stored under name.
func (r *Registry) RegisterAlgorithm(name string, alg similarity.Algorithm) error {
	if name == "" {
		return errors.NewValidationError("name", name, "algorithm name must not be empty")
	}
	if alg.Threshold < 0 || alg.Threshold > 1 {
		return errors.NewValidationError("threshold", alg.Threshold, "must be within [0, 1]")
	}
	if !knownKind(alg.Kind) {
		return errors.NewValidationError("kind", int(alg.Kind), "unknown algorithm kind")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms[name] = alg
	return nil
}

// RegisterModel adds or replaces the scorer stored under name.
func (r *Registry) RegisterModel(name string, s scorer.Scorer) error {
	if name == "" {
		return errors.NewValidationError("name", name, "model name must not be empty")
	}
	if s == nil {
		return errors.NewValidationError("model", nil, "model must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[name] = s
	return nil
}

// Algorithm looks up an algorithm by name.
func (r *Registry) Algorithm(name string) (similarity.Algorithm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.algorithm(name)
}

// Model looks up a scorer by name.
func (r *Registry) Model(name string) (scorer.Scorer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.model(name)
}

// Algorithms returns the registered algorithm names, sorted.
func (r *Registry) Algorithms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedNames(r.algorithms)
}

// Models returns the registered model names, sorted.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedNames(r.models)
}

// Reader resolves names against a registry whose read lock is held.
type Reader struct {
	r *Registry
}

func (rd Reader) Algorithm(name string) (similarity.Algorithm, error) {
	return rd.r.algorithm(name)
}

func (rd Reader) Model(name string) (scorer.Scorer, error) {
	return rd.r.model(name)
}

// Read runs fn while holding the read lock, so every lookup fn makes sees the
// same registry contents. fn must not register anything.
func (r *Registry) Read(fn func(Reader) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(Reader{r: r})
}

func (r *Registry) algorithm(name string) (similarity.Algorithm, error) {
	alg, ok := r.algorithms[name]
	if !ok {
		return similarity.Algorithm{}, errors.NewNotFoundError("algorithm", name)
	}
	return alg, nil
}

func (r *Registry) model(name string) (scorer.Scorer, error) {
	s, ok := r.models[name]
	if !ok {
		return nil, errors.NewNotFoundError("model", name)
	}
	return s, nil
}

func knownKind(kind similarity.Kind) bool {
	for _, k := range similarity.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
