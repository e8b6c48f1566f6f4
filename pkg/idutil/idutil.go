package idutil

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NextID returns a time-ordered unique int64. Rows keyed by these ids sort in
// generation order, which the ledger relies on to break created_at ties.
func NextID() int64 {
	return node.Generate().Int64()
}
