package pipeline

import (
	"context"
	"path/filepath"
	"sort"

	"lintwell/src/analyze"
	"lintwell/src/cache"
	"lintwell/src/contracts"
	"lintwell/src/discover"
	"lintwell/src/logger"
	"lintwell/src/pylint"
	"lintwell/src/runner"
	"lintwell/src/sanitize"
	"lintwell/src/workflow"
)

// requirementPatterns are the files whose hash keys both the CI dependency
// cache and the local result cache.
var requirementPatterns = []string{"**/requirements*.txt"}

// LocalResult is the outcome of an in-process lint run.
type LocalResult struct {
	RequestID string
	Cards     []contracts.LintCard

	// ExitCode mirrors the external linter's exit status. When cached
	// results are replayed, the bitmask is reconstructed from the combined
	// diagnostics, which matches what a full run would have produced.
	ExitCode int

	FilesTotal  int
	FilesCached int
	Stderr      string
}

// Local runs the whole pipeline in-process: discover, lint, parse, build
// cards.
type Local struct {
	runner *runner.Runner
	log    logger.Logger

	// UseCache enables the incremental result cache.
	UseCache bool

	cacheDir string
}

// NewLocal creates a local pipeline from config.
func NewLocal(cfg *Config, log logger.Logger) *Local {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Local{
		runner:   runner.New(cfg.PylintBin),
		log:      log,
		cacheDir: cfg.CacheDir,
	}
}

// Run lints every Python file under root, forwarding passthrough to the
// linter unchanged.
func (p *Local) Run(ctx context.Context, root string, passthrough []string) (*LocalResult, error) {
	requestID := NewRequestID()

	files, err := discover.Files(root, discover.Options{})
	if err != nil {
		return nil, err
	}

	result := &LocalResult{
		RequestID:  requestID,
		FilesTotal: len(files),
	}
	if len(files) == 0 {
		p.log.Info("no Python files under %s", root)
		return result, nil
	}

	var c *cache.Cache
	hashes := make(map[string]string)
	toLint := files

	if p.UseCache {
		c, toLint, hashes = p.restoreFromCache(ctx, root, files, result)
	}

	var diags []pylint.Diagnostic
	if len(toLint) > 0 {
		p.log.Info("linting %d of %d files", len(toLint), len(files))

		runResult, err := p.runner.Run(ctx, root, toLint, passthrough)
		if err != nil {
			return nil, err
		}
		result.Stderr = runResult.Stderr
		result.ExitCode = runResult.ExitCode

		parsed, err := pylint.Parse([]byte(sanitize.Clean(runResult.Output)))
		if err != nil {
			return nil, err
		}
		diags = parsed

		if c != nil {
			p.storeInCache(c, toLint, hashes, parsed, runResult.ExitCode)
		}
	}

	if c != nil {
		cached := p.replayCached(c, files, toLint, hashes)
		diags = append(diags, cached...)
		// Cached diagnostics contribute their class bits to the exit code.
		result.ExitCode |= exitBits(cached)

		if err := c.Save(); err != nil {
			p.log.Error("failed to save cache: %v", err)
		}
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		return diags[i].Line < diags[j].Line
	})

	for i, d := range diags {
		result.Cards = append(result.Cards, analyze.BuildCard(requestID, d, i, 0))
	}
	return result, nil
}

// restoreFromCache opens and validates the cache, then partitions files
// into cache hits and files that still need linting.
func (p *Local) restoreFromCache(ctx context.Context, root string, files []string, result *LocalResult) (*cache.Cache, []string, map[string]string) {
	dir := p.cacheDir
	if dir == "" {
		dir = filepath.Join(root, cache.DefaultDirName)
	}
	c := cache.Open(dir)

	version, err := p.runner.Version(ctx)
	if err != nil {
		p.log.Debug("cache disabled: %v", err)
		return nil, files, nil
	}
	envKey, err := workflow.HashFiles(root, requirementPatterns...)
	if err != nil {
		p.log.Debug("requirements hash failed: %v", err)
		envKey = ""
	}
	c.Validate(version, envKey)
	c.Prune(files)

	hashes := make(map[string]string, len(files))
	var toLint []string
	for _, f := range files {
		h, err := cache.HashFile(filepath.Join(root, f))
		if err != nil {
			toLint = append(toLint, f)
			continue
		}
		hashes[f] = h
		if _, ok := c.Lookup(f, h); ok {
			result.FilesCached++
			continue
		}
		toLint = append(toLint, f)
	}
	return c, toLint, hashes
}

// storeInCache records per-file diagnostics for the files just linted.
// Files are only cached on runs where the linter completed normally
// (no usage error), so a crashed run cannot poison the cache.
func (p *Local) storeInCache(c *cache.Cache, linted []string, hashes map[string]string, diags []pylint.Diagnostic, exitCode int) {
	if runner.DecodeStatus(exitCode).Usage {
		return
	}

	byFile := make(map[string][]pylint.Diagnostic)
	for _, d := range diags {
		byFile[filepath.ToSlash(d.Path)] = append(byFile[filepath.ToSlash(d.Path)], d)
	}

	for _, f := range linted {
		h, ok := hashes[f]
		if !ok {
			continue
		}
		c.Store(f, h, byFile[filepath.ToSlash(f)])
	}
}

// replayCached returns the stored diagnostics for every cache hit.
func (p *Local) replayCached(c *cache.Cache, files, linted []string, hashes map[string]string) []pylint.Diagnostic {
	lintedSet := make(map[string]bool, len(linted))
	for _, f := range linted {
		lintedSet[f] = true
	}

	var cached []pylint.Diagnostic
	for _, f := range files {
		if lintedSet[f] {
			continue
		}
		if diags, ok := c.Lookup(f, hashes[f]); ok {
			cached = append(cached, diags...)
		}
	}
	return cached
}

// exitBits reconstructs pylint's exit bitmask from diagnostic classes.
func exitBits(diags []pylint.Diagnostic) int {
	bits := 0
	for _, d := range diags {
		switch d.Severity() {
		case pylint.SeverityFatal:
			bits |= runner.ExitFatal
		case pylint.SeverityError:
			bits |= runner.ExitError
		case pylint.SeverityWarning:
			bits |= runner.ExitWarning
		case pylint.SeverityRefactor:
			bits |= runner.ExitRefactor
		case pylint.SeverityConvention:
			bits |= runner.ExitConvention
		}
	}
	return bits
}
