package db

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func TestTracer(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	tracer{logger: logger}.trace("SELECT 1", nil)()
	is.Equal(buf.Len(), 0)

	tracer{logger: logger, verbose: true}.trace("SELECT *\n\tFROM boards\n\tWHERE id = ?", []interface{}{1})()
	is.True(strings.Contains(buf.String(), `query="SELECT * FROM boards WHERE id = ?"`))

	buf.Reset()
	old := SlowQuery
	SlowQuery = 0
	t.Cleanup(func() { SlowQuery = old })
	tracer{logger: logger}.trace("SELECT 1", nil)()
	is.True(strings.HasPrefix(buf.String(), "WARN slow query"))

	tracer{}.trace("SELECT 1", nil)()
}
