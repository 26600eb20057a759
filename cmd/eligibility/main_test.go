package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedPath = filepath.Join("..", "..", "data", "colleges.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckTableOutput(t *testing.T) {
	out, err := execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "SSLC", "--percentage", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "Vijaya PU College")
	assert.Contains(t, out, "12 colleges:")
	assert.Contains(t, out, "(board: state)")
}

func TestCheckJSONOutput(t *testing.T) {
	out, err := execute(t, "check", "--catalog", seedPath, "--level", "puc", "--board", "cbse", "--percentage", "82", "--stream", "commerce", "-o", "json")
	require.NoError(t, err)

	var body struct {
		Results []struct {
			CollegeName string `json:"college_name"`
			Status      string `json:"status"`
			Reason      string `json:"reason"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Results, 12)
	for _, result := range body.Results {
		if result.CollegeName == "St. Joseph's College of Commerce" {
			assert.Equal(t, "ELIGIBLE", result.Status)
		}
		if result.CollegeName == "RV College of Engineering" {
			assert.Equal(t, "STREAM_MISMATCH", result.Reason)
		}
	}
}

func TestCheckCSVOutput(t *testing.T) {
	out, err := execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "icse", "--percentage", "60", "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "College,Status"))
}

func TestCheckFailures(t *testing.T) {
	_, err := execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "cbse", "--percentage", "120")
	assert.ErrorContains(t, err, "percentage must be between 0 and 100")

	_, err = execute(t, "check", "--catalog", "missing.yaml", "--level", "class10", "--board", "cbse", "--percentage", "50")
	assert.ErrorContains(t, err, "load catalog")

	_, err = execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "cbse")
	assert.Error(t, err)

	_, err = execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "cbse", "--percentage", "50", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestCheckRejectsOutOfRangeBand(t *testing.T) {
	for _, band := range []string{"0", "-2", "101"} {
		_, err := execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "cbse", "--percentage", "50", "--band", band)
		assert.ErrorContains(t, err, "band must be greater than 0 and at most 100", band)
	}

	out, err := execute(t, "check", "--catalog", seedPath, "--level", "class10", "--board", "cbse", "--percentage", "50", "--band", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "12 colleges:")
}
