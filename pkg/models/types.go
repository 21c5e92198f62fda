package models

import "time"

// FileNode types as reported by the project tree.
const (
	NodeTypeFile   = "file"
	NodeTypeFolder = "folder"
)

// FileNode is a single entry in the project file tree. Folders carry
// their children; files are leaves.
type FileNode struct {
	Key          string     `json:"key"`
	Title        string     `json:"title"`
	Path         string     `json:"path"`
	Type         string     `json:"type"`
	IsLeaf       bool       `json:"isLeaf,omitempty"`
	Children     []FileNode `json:"children,omitempty"`
	Size         int64      `json:"size,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}
