// Package category derives a category tree from the free-text category paths
// stored on product rows.
package category

import (
	"sort"
	"strings"

	"shopdesk/internal/models"
)

const (
	DefaultListSeparator = ","
	DefaultPathSeparator = ">"
	DefaultStatus        = "Active"
	DefaultCreatedDate   = "01/01/2024"
)

// NodeData is the display payload of a tree node. ID is assigned per build in
// first-seen order and is not stable across builds.
type NodeData struct {
	ID           int    `json:"id"`
	Category     string `json:"category"`
	CategorySlug string `json:"categoryslug"`
	CreatedDate  string `json:"createddate"`
	Status       string `json:"status"`
}

// Node is one category in the emitted tree. Leaves carry no children key.
type Node struct {
	Key      string   `json:"key"`
	Data     NodeData `json:"data"`
	Children []Node   `json:"children,omitempty"`
}

// Result is the emitted forest plus the number of top-level nodes.
type Result struct {
	Nodes []Node
	Total int
}

// Builder holds the separators and placeholder metadata for tree builds. The
// zero value of each string field falls back to its Default constant.
type Builder struct {
	Schema        models.Schema
	ListSeparator string
	PathSeparator string
	CreatedDate   string
	Status        string
}

// NewBuilder returns a Builder with default separators and metadata.
func NewBuilder(schema models.Schema) *Builder {
	return &Builder{
		Schema:        schema,
		ListSeparator: DefaultListSeparator,
		PathSeparator: DefaultPathSeparator,
		CreatedDate:   DefaultCreatedDate,
		Status:        DefaultStatus,
	}
}

// arenaNode is a node under construction. parent is -1 for top-level nodes.
type arenaNode struct {
	parent   int
	data     NodeData
	key      string
	children []int
}

type childKey struct {
	parent int
	name   string
}

type arena struct {
	nodes  []arenaNode
	index  map[childKey]int
	roots  []int
	nextID int
}

// Build collects unique category paths from records and assembles them into
// a tree. Each record's category value may list several paths.
func (b *Builder) Build(records []models.Record) Result {
	paths := b.uniquePaths(records)

	pathSep := b.pathSeparator()
	sort.SliceStable(paths, func(i, j int) bool {
		return strings.Count(paths[i], pathSep) < strings.Count(paths[j], pathSep)
	})

	a := &arena{index: make(map[childKey]int), nextID: 1}
	for _, path := range paths {
		b.insert(a, b.segments(path))
	}

	nodes := make([]Node, 0, len(a.roots))
	for _, idx := range a.roots {
		nodes = append(nodes, a.emit(idx))
	}
	return Result{Nodes: nodes, Total: len(nodes)}
}

// uniquePaths returns trimmed, non-empty path strings in first-seen order
// with exact duplicates removed.
func (b *Builder) uniquePaths(records []models.Record) []string {
	var (
		paths []string
		seen  = make(map[string]struct{})
	)
	for _, rec := range records {
		raw := b.schema().Resolve(rec, models.FieldCategory)
		if raw == "" {
			continue
		}
		for _, p := range strings.Split(raw, b.listSeparator()) {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	return paths
}

func (b *Builder) segments(path string) []string {
	parts := strings.Split(path, b.pathSeparator())
	out := parts[:0]
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (b *Builder) insert(a *arena, segments []string) {
	parent := -1
	for _, name := range segments {
		k := childKey{parent: parent, name: name}
		idx, ok := a.index[k]
		if !ok {
			idx = a.add(parent, name, b.createdDate(), b.status())
			a.index[k] = idx
		}
		parent = idx
	}
}

func (a *arena) add(parent int, name, created, status string) int {
	slug := Slugify(name)
	key := slug
	if parent >= 0 {
		key = a.nodes[parent].key + "-" + slug
	}

	idx := len(a.nodes)
	a.nodes = append(a.nodes, arenaNode{
		parent: parent,
		key:    key,
		data: NodeData{
			ID:           a.nextID,
			Category:     name,
			CategorySlug: slug,
			CreatedDate:  created,
			Status:       status,
		},
	})
	a.nextID++

	if parent < 0 {
		a.roots = append(a.roots, idx)
	} else {
		a.nodes[parent].children = append(a.nodes[parent].children, idx)
	}
	return idx
}

func (a *arena) emit(idx int) Node {
	n := a.nodes[idx]
	out := Node{Key: n.key, Data: n.data}
	if len(n.children) > 0 {
		out.Children = make([]Node, 0, len(n.children))
		for _, c := range n.children {
			out.Children = append(out.Children, a.emit(c))
		}
	}
	return out
}

func (b *Builder) schema() models.Schema {
	if b.Schema == nil {
		return models.DefaultSchema()
	}
	return b.Schema
}

func (b *Builder) listSeparator() string {
	if b.ListSeparator == "" {
		return DefaultListSeparator
	}
	return b.ListSeparator
}

func (b *Builder) pathSeparator() string {
	if b.PathSeparator == "" {
		return DefaultPathSeparator
	}
	return b.PathSeparator
}

func (b *Builder) createdDate() string {
	if b.CreatedDate == "" {
		return DefaultCreatedDate
	}
	return b.CreatedDate
}

func (b *Builder) status() string {
	if b.Status == "" {
		return DefaultStatus
	}
	return b.Status
}
