package parse

import (
	"strings"

	"github.com/google/shlex"
)

// Split breaks a command line into words using shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}

// SplitCommandPath returns the leading words of a command line, stopping at
// the first dashed argument so that "docker image --help" yields
// [docker image].
func SplitCommandPath(s string) ([]string, error) {
	args, err := Split(s)
	if err != nil {
		return nil, err
	}

	path := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			break
		}
		path = append(path, arg)
	}

	return path, nil
}

// JoinCommandPath is the inverse of SplitCommandPath for plain words
func JoinCommandPath(path []string) string {
	return strings.Join(path, " ")
}
