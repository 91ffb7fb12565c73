package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHelpDescribesMatching(t *testing.T) {
	long := strings.Join(strings.Fields(rootCmd.Long), " ")

	assert.Contains(t, long, "three or more of the same fruit.")
	assert.Contains(t, long, "Vegetables next to a cleared line are picked up")
	assert.NotContains(t, long, "fruit or vegetable", "vegetables never form lines of their own")
}
