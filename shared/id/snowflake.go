package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog/log"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets the node id used by New. Only the first call has effect.
func Init(nodeID int64) {
	once.Do(func() {
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			log.Warn().Err(err).Int64("node_id", nodeID).Msg("invalid snowflake node id, falling back to node 1")

			n, _ = snowflake.NewNode(1)
		}

		node = n
	})
}

// New returns a time-ordered unique id. Init(1) is applied on first use if Init was never called.
func New() snowflake.ID {
	Init(1)

	return node.Generate()
}

func NewString() string {
	return New().String()
}
