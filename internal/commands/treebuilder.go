package commands

import "go.uber.org/zap"

// TreeBuilder renders directory trees using configured options.
type TreeBuilder struct {
	SortEntries bool
	Logger      *zap.Logger
}

func (treeBuilder TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}
