package grammar

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/incr/parse"
	"github.com/ardnew/incr/pkg"
)

// PathEnv names the environment variable listing grammar directories,
// separated like $PATH.
const PathEnv = pkg.EnvPrefix + "PATH"

// Extensions are tried in order when a grammar name has none.
var Extensions = []string{".yaml", ".yml"}

// SearchPath returns the directories searched for grammar files: dirs
// followed by those listed in $INCR_PATH, keeping only directories that
// exist and dropping repeats.
func SearchPath(dirs ...string) []string {
	path := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(os.Getenv(PathEnv))...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	var out []string

	for _, dir := range filepath.SplitList(path) {
		if dir != "" && !slices.Contains(out, dir) {
			out = append(out, dir)
		}
	}

	return out
}

// Find returns the path of the grammar file called name.
//
// A name that is an existing file is returned as is. Otherwise a relative
// name is looked up in each directory of [SearchPath](dirs...), first as
// given and then with each of [Extensions] appended.
func Find(name string, dirs ...string) (string, error) {
	if isFile(name) {
		return name, nil
	}

	if !filepath.IsAbs(name) {
		for _, dir := range SearchPath(dirs...) {
			for _, c := range candidates(name) {
				if p := filepath.Join(dir, c); isFile(p) {
					return p, nil
				}
			}
		}
	}

	return "", ErrNotFound.With(
		slog.String("grammar", name),
		slog.Any("path", SearchPath(dirs...)),
	)
}

func candidates(name string) []string {
	out := []string{name}

	if filepath.Ext(name) == "" {
		for _, ext := range Extensions {
			out = append(out, name+ext)
		}
	}

	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// Open finds the grammar file called name in dirs and loads it.
// It returns the grammar and the path it was read from.
func Open(ctx context.Context, name string, dirs []string, opts ...Option) (*Grammar, string, error) {
	path, err := Find(name, dirs...)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, ErrGrammarRead.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	g, err := Load(ctx, f, opts...)
	if err != nil {
		return nil, path, parse.WrapError(err).With(slog.String("path", path))
	}

	return g, path, nil
}
