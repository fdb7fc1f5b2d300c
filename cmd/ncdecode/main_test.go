package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloBase11 = `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><capabilities>` +
		`<capability>urn:ietf:params:netconf:base:1.1</capability></capabilities></hello>`
	getConfig = `<rpc message-id="101"><get-config><source><running/></source></get-config></rpc>`
)

func chunk(s string) string { return fmt.Sprintf("\n#%d\n%s\n##\n", len(s), s) }

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		name     string
		args     []string
		stdin    string
		want     []string
		wantExit int
	}{
		{
			name:  "single document",
			stdin: getConfig,
			want: []string{
				`{"index":0,"message":{"type":"rpc","message-id":"101","operation":"get-config","params":{"source":"running"}}}`,
			},
		},
		{
			name:  "eom stream",
			args:  []string{"-framing", "eom"},
			stdin: getConfig + "]]>]]>\n" + `<rpc message-id="102"><delete-config><target><url>file:///x</url></target></delete-config></rpc>]]>]]>`,
			want: []string{
				`{"index":0,"message":{"type":"rpc","message-id":"101","operation":"get-config","params":{"source":"running"}}}`,
				`{"index":1,"message":{"type":"rpc","message-id":"102","operation":"delete-config","params":{"target":"url:file:///x"}}}`,
			},
		},
		{
			name:  "auto switches to chunked after hello",
			args:  []string{"-framing", "auto"},
			stdin: helloBase11 + "]]>]]>" + chunk(getConfig),
			want: []string{
				`{"index":0,"message":{"type":"hello","capabilities":["urn:ietf:params:netconf:base:1.1"]}}`,
				`{"index":1,"message":{"type":"rpc","message-id":"101","operation":"get-config","params":{"source":"running"}}}`,
			},
		},
		{
			name:  "unsupported operation",
			stdin: `<rpc message-id="7"><commit/></rpc>`,
			want: []string{
				`{"index":0,"error":{"error-type":"protocol","error-tag":"operation-not-supported","error-severity":"error",` +
					`"error-message":"decode: unsupported operation in <rpc> field:commit"}}`,
			},
			wantExit: 1,
		},
		{
			name:  "decoding continues after a rejected message",
			args:  []string{"-framing", "chunked"},
			stdin: chunk(`<rpc message-id="1"><commit/></rpc>`) + chunk(getConfig),
			want: []string{
				`{"index":0,"error":{"error-type":"protocol","error-tag":"operation-not-supported","error-severity":"error",` +
					`"error-message":"decode: unsupported operation in <rpc> field:commit"}}`,
				`{"index":1,"message":{"type":"rpc","message-id":"101","operation":"get-config","params":{"source":"running"}}}`,
			},
			wantExit: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			var stdout, stderr bytes.Buffer
			exit := run(context.Background(), tc.args, strings.NewReader(tc.stdin), &stdout, &stderr)
			check.Equal(tc.wantExit, exit, stderr.String())
			got := lines(stdout.String())
			if check.Len(got, len(tc.want), stdout.String()) {
				for i := range got {
					check.JSONEq(tc.want[i], got[i])
				}
			}
		})
	}
}

func TestRunErrorTags(t *testing.T) {
	for _, tc := range []struct {
		name    string
		args    []string
		stdin   string
		wantTag string
	}{
		{name: "not xml", stdin: `<rpc message-id="1">`, wantTag: "malformed-message"},
		{name: "truncated stream", args: []string{"-framing", "eom"}, stdin: getConfig, wantTag: "malformed-message"},
		{name: "bad chunk", args: []string{"-framing", "chunked"}, stdin: getConfig + "]]>]]>", wantTag: "malformed-message"},
		{name: "unknown root", stdin: `<notification/>`, wantTag: "unknown-element"},
		{
			name:    "strict namespace",
			args:    []string{"-strict"},
			stdin:   getConfig,
			wantTag: "unknown-namespace",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			var stdout, stderr bytes.Buffer
			exit := run(context.Background(), tc.args, strings.NewReader(tc.stdin), &stdout, &stderr)
			check.Equal(1, exit)

			var res struct {
				Index int `json:"index"`
				Error struct {
					Tag string `json:"error-tag"`
				} `json:"error"`
			}
			if check.NoError(json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &res), stdout.String()) {
				check.Equal(tc.wantTag, res.Error.Tag)
			}
			check.Contains(stderr.String(), "message rejected")
		})
	}
}

func TestRunFiles(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xml")
	require.NoError(t, os.WriteFile(good, []byte(getConfig), 0o644))

	var stdout, stderr bytes.Buffer
	exit := run(context.Background(), []string{good, filepath.Join(dir, "missing.xml")}, nil, &stdout, &stderr)
	check.Equal(1, exit)
	check.JSONEq(`{"index":0,"source":"`+good+`","message":{"type":"rpc","message-id":"101","operation":"get-config","params":{"source":"running"}}}`,
		strings.TrimSpace(stdout.String()))
	check.Contains(stderr.String(), "open input")
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{
		{"-framing", "lines"},
		{"-log-level", "loud"},
		{"-bogus"},
		{"-config", "/nonexistent/ncdecode.toml"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, 2, run(context.Background(), args, strings.NewReader(""), &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(ctx, []string{"-framing", "eom"}, strings.NewReader(getConfig+"]]>]]>"), &stdout, &stderr))
	assert.Empty(t, stdout.String())
}
