package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdraft/mdraft-cli/pkg/models"
)

// MaxTreeDepth bounds recursion so a pathological project (or a symlink
// cycle surfaced as directories) cannot blow up a tree request.
const MaxTreeDepth = 10

// excludedDirs are build outputs and dependency caches that never belong
// in the project browser.
var excludedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"vendor":       true,
	"coverage":     true,
	"out":          true,
	"__pycache__":  true,
}

// allowedDotfiles are the dotfiles still worth showing.
var allowedDotfiles = map[string]bool{
	".gitignore":    true,
	".editorconfig": true,
}

// Visible reports whether a directory entry should appear in the tree.
func Visible(name string, isDir bool) bool {
	if strings.HasPrefix(name, ".") {
		return allowedDotfiles[name]
	}
	if isDir && excludedDirs[name] {
		return false
	}
	return true
}

// BuildTree lists the project tree rooted at root/sub. Folders sort
// before files, each group lexicographically by name.
func BuildTree(root, sub string) ([]models.FileNode, error) {
	start, err := ResolveWithinRoot(root, sub)
	if err != nil {
		return nil, err
	}
	return walkTree(root, start, 0)
}

func walkTree(root, dir string, depth int) ([]models.FileNode, error) {
	if depth >= MaxTreeDepth {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	nodes := make([]models.FileNode, 0, len(entries))
	for _, entry := range entries {
		if !Visible(entry.Name(), entry.IsDir()) {
			continue
		}

		full := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(root, full)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", full, err)
		}
		rel = filepath.ToSlash(rel)

		node := models.FileNode{
			Key:   rel,
			Title: entry.Name(),
			Path:  rel,
		}

		if entry.IsDir() {
			node.Type = models.NodeTypeFolder
			children, err := walkTree(root, full, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = children
		} else {
			node.Type = models.NodeTypeFile
			node.IsLeaf = true
			if info, err := entry.Info(); err == nil {
				node.Size = info.Size()
				mod := info.ModTime()
				node.LastModified = &mod
			}
		}

		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Type != nodes[j].Type {
			return nodes[i].Type == models.NodeTypeFolder
		}
		return nodes[i].Title < nodes[j].Title
	})

	return nodes, nil
}

// Flatten returns the relative paths of every file in the tree, depth
// first. The TUI file browser feeds these to its fuzzy filter.
func Flatten(nodes []models.FileNode) []string {
	var paths []string
	for _, n := range nodes {
		if n.Type == models.NodeTypeFile {
			paths = append(paths, n.Path)
			continue
		}
		paths = append(paths, Flatten(n.Children)...)
	}
	return paths
}
