package broker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/etnz/statements"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Glob lists the statements (*.html) of each directory, in directory order
// then file name order.
func Glob(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("cannot list statements in %q: %w", dir, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// ParseDirs parses all the statements of dirs in parallel.
//
// Snapshots are returned in Glob order, ready to be merged. The first failure
// stops the remaining work and is returned.
func (p *Parser) ParseDirs(ctx context.Context, dirs ...string) ([]*statements.Snapshot, error) {
	files, err := Glob(dirs...)
	if err != nil {
		return nil, err
	}
	p.log.Debug("statements found", zap.Strings("dirs", dirs), zap.Int("files", len(files)))

	snapshots := make([]*statements.Snapshot, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Workers, 1))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := p.ParseFile(file)
			if err != nil {
				return err
			}
			snapshots[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}
