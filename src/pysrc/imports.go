package pysrc

import "strings"

// ImportStmt is a module-level import statement.
type ImportStmt struct {
	Line    int
	From    string   // module after "from", empty for plain imports
	Modules []string // imported names (dotted for plain imports)
}

// TopLevel returns the first dotted segment of the statement's module.
// Relative imports ("from . import x") return "".
func (s *ImportStmt) TopLevel() string {
	name := s.From
	if name == "" && len(s.Modules) > 0 {
		name = s.Modules[0]
	}
	name = strings.TrimSpace(name)
	if name == "" || name[0] == '.' {
		return ""
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// Imports extracts module-level import statements from scanned lines.
// Indented imports (inside functions or try blocks) are skipped: the
// grouping checks only apply to the top of the module.
func Imports(lines []Line) []ImportStmt {
	var out []ImportStmt
	for _, ln := range lines {
		if ln.Blank || ln.Comment || ln.InString {
			continue
		}
		code := ln.Code
		if Indent(code) != 0 {
			continue
		}
		stmt, ok := parseImport(strings.TrimSpace(code))
		if !ok {
			continue
		}
		stmt.Line = ln.Num
		out = append(out, stmt)
	}
	return out
}

func parseImport(code string) (ImportStmt, bool) {
	switch {
	case strings.HasPrefix(code, "import "):
		rest := strings.TrimPrefix(code, "import ")
		return ImportStmt{Modules: importedNames(rest)}, true
	case strings.HasPrefix(code, "from "):
		rest := strings.TrimPrefix(code, "from ")
		idx := strings.Index(rest, " import ")
		if idx < 0 {
			return ImportStmt{}, false
		}
		mod := strings.TrimSpace(rest[:idx])
		names := importedNames(rest[idx+len(" import "):])
		return ImportStmt{From: mod, Modules: names}, true
	}
	return ImportStmt{}, false
}

// importedNames splits "a.b as c, d" into its imported names, dropping
// "as" aliases and parentheses.
func importedNames(s string) []string {
	s = strings.Trim(s, "() \t\\")
	var names []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if i := strings.Index(part, " as "); i >= 0 {
			part = part[:i]
		}
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// stdlibModules holds the top-level names of the Python standard library
// relevant for import grouping. Covers both 2.x and 3.x spellings since
// the scanned code may target either.
var stdlibModules = map[string]bool{
	"abc": true, "argparse": true, "array": true, "ast": true, "asyncio": true,
	"atexit": true, "base64": true, "bisect": true, "builtins": true,
	"calendar": true, "cgi": true, "collections": true, "concurrent": true,
	"configparser": true, "ConfigParser": true, "contextlib": true, "copy": true,
	"csv": true, "ctypes": true, "datetime": true, "decimal": true,
	"difflib": true, "dis": true, "email": true, "enum": true, "errno": true,
	"fcntl": true, "fileinput": true, "fnmatch": true, "functools": true,
	"gc": true, "getopt": true, "getpass": true, "glob": true, "gzip": true,
	"hashlib": true, "heapq": true, "hmac": true, "html": true, "http": true,
	"httplib": true, "imp": true, "importlib": true, "inspect": true,
	"io": true, "itertools": true, "json": true, "keyword": true,
	"logging": true, "math": true, "mimetypes": true, "multiprocessing": true,
	"numbers": true, "operator": true, "os": true, "pathlib": true,
	"pickle": true, "pkgutil": true, "platform": true, "pprint": true,
	"pty": true, "Queue": true, "queue": true, "random": true, "re": true,
	"sched": true, "select": true, "shlex": true, "shutil": true,
	"signal": true, "site": true, "socket": true, "sqlite3": true,
	"ssl": true, "stat": true, "string": true, "StringIO": true,
	"struct": true, "subprocess": true, "sys": true, "sysconfig": true,
	"tarfile": true, "tempfile": true, "termios": true, "textwrap": true,
	"threading": true, "time": true, "timeit": true, "token": true,
	"tokenize": true, "traceback": true, "types": true, "typing": true,
	"unicodedata": true, "unittest": true, "urllib": true, "urllib2": true,
	"urlparse": true, "uuid": true, "warnings": true, "weakref": true,
	"webbrowser": true, "xml": true, "zipfile": true, "zlib": true,
	"__future__": true,
}

// IsStdlib reports whether a top-level module name is part of the Python
// standard library.
func IsStdlib(name string) bool { return stdlibModules[name] }
