package csvexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEmptyProducesNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestWriteHeaderFromFirstRecord(t *testing.T) {
	records := []*Record{
		NewRecord().Set("id", 1).Set("title", "Sunday Service").Set("minutes", 90),
		NewRecord().Set("id", 2).Set("title", "Bible Study").Set("minutes", 60),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	assert.Equal(t,
		"id,title,minutes\n1,Sunday Service,90\n2,Bible Study,60\n",
		buf.String())
}

func TestSetOverwritesInPlace(t *testing.T) {
	rec := NewRecord().Set("a", 1).Set("b", 2).Set("a", 3)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*Record{rec}))
	assert.Equal(t, "a,b\n3,2\n", buf.String())
}

func TestWriteQuotesSpecialValues(t *testing.T) {
	rec := NewRecord().Set("title", `a "quoted", value`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*Record{rec}))
	assert.Contains(t, buf.String(), `"a ""quoted"", value"`)
}
