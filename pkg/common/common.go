package common

import (
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// NA marks a config value as deliberately unset
const NA = "N/A"

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

func idNode() *snowflake.Node {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return node
}

// UUIDint64 returns a time ordered 64 bit id
func UUIDint64() int64 {
	return idNode().Generate().Int64()
}

// UUID returns a time ordered id in base58, safe for cookies and URLs
func UUID() string {
	return idNode().Generate().Base58()
}

func IsEmptyOrNA(val string) bool {
	val = strings.TrimSpace(val)
	return val == "" || val == NA
}
