package types

import "github.com/ef-ds/deque"

// WalkFunc is called for every command visited by Walk. Returning false stops
// the walk.
type WalkFunc func(cmd *ShellCommand) bool

// Walk visits root and all of its subcommands breadth-first, parents before
// children and siblings in listing order
func Walk(root *ShellCommand, fn WalkFunc) {
	if root == nil {
		return
	}

	var q deque.Deque
	q.PushBack(root)
	for q.Len() > 0 {
		v, _ := q.PopFront()
		cmd := v.(*ShellCommand)
		if !fn(cmd) {
			return
		}
		for _, sub := range cmd.SubCommands {
			q.PushBack(sub)
		}
	}
}

// Count returns the number of commands in the tree rooted at root
func Count(root *ShellCommand) int {
	n := 0
	Walk(root, func(*ShellCommand) bool {
		n++
		return true
	})
	return n
}

// Find returns the command whose path below root is path, so that
// Find(docker, "image", "ls") returns "docker image ls"
func Find(root *ShellCommand, path ...string) (*ShellCommand, bool) {
	if root == nil {
		return nil, false
	}
	cmd := root
	for _, name := range path {
		sub, ok := cmd.SubCommand(name)
		if !ok {
			return nil, false
		}
		cmd = sub
	}
	return cmd, true
}

// Paths returns the space separated path of every command in walk order
func Paths(root *ShellCommand) []string {
	var paths []string
	Walk(root, func(cmd *ShellCommand) bool {
		paths = append(paths, cmd.Path())
		return true
	})
	return paths
}
