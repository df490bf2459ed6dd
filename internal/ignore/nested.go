package ignore

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bethropolis/combiner/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// nestedIgnores evaluates ignore files found in subdirectories of the root.
// Files are loaded lazily, once per directory, and each one applies to paths
// beneath its own directory. The deepest file with a matching pattern decides.
type nestedIgnores struct {
	rootDir  string
	fileName string
	cache    map[string]gitignore.GitIgnore
	logger   utils.Logger
}

func newNestedIgnores(rootDir, fileName string, logger utils.Logger) *nestedIgnores {
	return &nestedIgnores{
		rootDir:  rootDir,
		fileName: fileName,
		cache:    make(map[string]gitignore.GitIgnore),
		logger:   logger,
	}
}

// explain returns the verdict of the deepest nested ignore file matching c.
// The root's own ignore file is not consulted here.
func (n *nestedIgnores) explain(c Candidate) (Verdict, bool) {
	for dir := path.Dir(c.Path); dir != "." && dir != "/"; dir = path.Dir(dir) {
		ignoreFile := n.load(dir)
		if ignoreFile == nil {
			continue
		}

		rel := strings.TrimPrefix(c.Path, dir+"/")
		match := ignoreFile.Relative(rel, c.IsDir)
		if match == nil {
			continue
		}

		verdict := Verdict{
			Included: match.Include(),
			Reason:   GitignoreMatch,
			Pattern:  match.String(),
			Source:   dir + "/" + n.fileName,
		}
		if verdict.Included {
			verdict.Reason = GitignoreNegated
		}
		return verdict, true
	}
	return Verdict{}, false
}

// load returns the ignore file of dir, or nil if it has none.
func (n *nestedIgnores) load(dir string) gitignore.GitIgnore {
	if cached, ok := n.cache[dir]; ok {
		return cached
	}

	file := filepath.Join(n.rootDir, filepath.FromSlash(dir), n.fileName)
	var loaded gitignore.GitIgnore
	if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
		loaded = gitignore.NewWithErrors(file, func(e gitignore.Error) bool {
			n.logger.Warn("ignore: %s: %v", e.Position(), e.Underlying())
			return true
		})
		if loaded != nil {
			n.logger.Debug("ignore: Loaded nested ignore file %s", file)
		}
	}
	n.cache[dir] = loaded
	return loaded
}
