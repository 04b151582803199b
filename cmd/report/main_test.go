package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/garage/internal/report/tabulate"
)

func TestRender(t *testing.T) {
	out := render(&tabulate.Table{
		Title:   "Work order costs",
		Headers: []string{"Work order", "Cost"},
		Rows:    [][]string{{"1", "172.50"}, {"2", "320.00"}},
	})

	assert.Contains(t, out, "Work order costs")
	assert.Contains(t, out, "Work order")
	assert.Contains(t, out, "172.50")
	assert.Contains(t, out, "320.00")
}

func TestRender_Empty(t *testing.T) {
	out := render(&tabulate.Table{Title: "Parts used", Headers: []string{"Part"}})

	assert.Contains(t, out, "no rows")
}
