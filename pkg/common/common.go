package common

import (
	"net/mail"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(nodeID())
	if err != nil {
		panic(err)
	}
}

func nodeID() int64 {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return 1
	}
	var sum int64
	for _, c := range host {
		sum += int64(c)
	}
	return sum % 1024
}

// UUIDint64 returns a cluster-safe int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// IsEmailValid reports whether addr parses as a single RFC 5322 address.
func IsEmailValid(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
