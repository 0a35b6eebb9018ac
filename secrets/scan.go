package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/panjf2000/ants/v2"
)

// secretAccessorName is the accessor convention the scan looks for. Classes
// declare the environment variables they read by returning an object literal
// from a get accessor with this name.
const secretAccessorName = "secretKeys"

// Scanner extracts secret environment variable identifiers from TypeScript
// sources. Files are parsed concurrently on a worker pool.
type Scanner struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner) error

// WithPoolSize sets the worker pool size for concurrent scanning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Scanner) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScanner creates a scanner with a default-sized worker pool.
func NewScanner(opts ...Option) (*Scanner, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// Scan parses every file and collects the identifiers returned by secretKeys
// accessors across all of them. The result is deduplicated and sorted so the
// generated artifacts are stable. Identifiers must be uppercase and free of
// whitespace; the first violation fails the whole scan.
func (s *Scanner) Scan(ctx context.Context, files []string) ([]string, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	seen := make(map[string]struct{})

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for _, path := range files {
		path := path
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			if failed() || ctx.Err() != nil {
				return
			}
			ids, err := scanFile(path)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			for _, id := range ids {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	s.logger.Debug("secret scan complete", "files", len(files), "identifiers", len(ids))
	return ids, nil
}

// Release releases the worker pool.
// The scanner should not be used after calling Release.
func (s *Scanner) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// scanFile parses one source file and returns its validated identifiers.
func scanFile(path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	file, err := ParseFile(path, string(source))
	if err != nil {
		return nil, err
	}

	collector := &secretCollector{}
	if err := Walk(file, collector); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(collector.keys))
	for _, key := range collector.keys {
		if err := validateIdentifier(path, key); err != nil {
			return nil, err
		}
		ids = append(ids, key.Text)
	}
	return ids, nil
}

// secretCollector gathers object literal keys from secretKeys accessors and
// ignores every other accessor.
type secretCollector struct {
	keys []PropertyKey
}

func (c *secretCollector) VisitClass(*ClassDecl) error { return nil }

func (c *secretCollector) VisitAccessor(*ClassDecl, *AccessorDecl) error { return nil }

func (c *secretCollector) VisitReturn(*AccessorDecl, *ReturnStmt) error { return nil }

func (c *secretCollector) VisitObjectLiteral(acc *AccessorDecl, obj *ObjectLiteral) error {
	if acc.Name != secretAccessorName {
		return nil
	}
	c.keys = append(c.keys, obj.Keys...)
	return nil
}

func validateIdentifier(path string, key PropertyKey) error {
	id := key.Text
	switch {
	case id == "":
		return &ValidationError{File: path, Identifier: id, Reason: "empty identifier"}
	case strings.ContainsFunc(id, unicode.IsSpace):
		return &ValidationError{File: path, Identifier: id, Reason: "must not contain whitespace"}
	case id != strings.ToUpper(id):
		return &ValidationError{File: path, Identifier: id, Reason: "must be uppercase"}
	}
	return nil
}
