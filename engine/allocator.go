package engine

import (
	"github.com/bwmarrin/snowflake"
)

// Allocator hands out post ids. Every id is returned at most once and ids
// grow with allocation time across all threads. Gaps are allowed.
type Allocator interface {
	NextID() (int64, error)
}

type AllocatorFunc func() (int64, error)

func (f AllocatorFunc) NextID() (int64, error) {
	return f()
}

// SnowflakeAllocator issues time-ordered ids without a database round
// trip. Ids from different nodes only stay increasing as far as the node
// clocks agree, so a deployment should run one node per post table.
type SnowflakeAllocator struct {
	node *snowflake.Node
}

func NewSnowflakeAllocator(nodeID int64) (*SnowflakeAllocator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &SnowflakeAllocator{node: node}, nil
}

func (a *SnowflakeAllocator) NextID() (int64, error) {
	return a.node.Generate().Int64(), nil
}
