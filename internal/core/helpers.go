package core

import (
	"os"
	"path/filepath"
	"strings"
)

// checkDir explains why path is not a usable directory. Empty means usable.
func checkDir(path string) string {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return "does not exist"
	case os.IsPermission(err):
		return "not readable"
	case err != nil:
		return err.Error()
	case !info.IsDir():
		return "not a directory"
	}
	f, err := os.Open(path)
	if err != nil {
		return "not readable"
	}
	_ = f.Close()
	return ""
}

// expandPath expands ~ to the given home directory and $VAR to env values.
func expandPath(p, home string, getenv func(string) string) string {
	if strings.Contains(p, "$") {
		p = os.Expand(p, getenv)
	}

	if strings.HasPrefix(p, "~/") {
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		p = home
	}

	return p
}

// foldContains reports whether list contains name, ignoring ASCII case.
func foldContains(list []string, name string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}
